package registration

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/klokku/backoffice/pkg/budget"
	"github.com/klokku/backoffice/pkg/client"
)

var ErrValidationFailed = errors.New("validation failed")

type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError lists the invalid fields of one tab.
type ValidationError struct {
	Tab    TabID
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("%s: tab %s has invalid fields: %s", ErrValidationFailed, e.Tab, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering %s validation: %v", tag, err))
		}
	}
	must("cpf", digitCount(11))
	must("cnpj", digitCount(14))
	must("cep", digitCount(8))
	must("phone", digitCount(10, 11))
	must("brl", func(fl validator.FieldLevel) bool {
		value, err := budget.ParseCurrency(fl.Field().String())
		return err == nil && value.IsPositive()
	})
	must("date", func(fl validator.FieldLevel) bool {
		_, err := budget.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// digitCount accepts formatted documents ("123.456.789-09") with one of the given numbers of digits.
func digitCount(counts ...int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		digits := client.DigitsOnly(raw)
		if strings.Trim(raw, "0123456789.-/() ") != "" {
			return false
		}
		for _, c := range counts {
			if len(digits) == c {
				return true
			}
		}
		return false
	}
}

// ValidateTab checks the field group owned by tab. It returns a *ValidationError when fields are invalid.
func ValidateTab(form Form, tab TabID) error {
	var group any
	switch tab {
	case TabPersonal:
		group = form.Personal
	case TabBusiness:
		group = form.Business
	case TabLoan:
		group = form.Loan
	case TabCredit:
		group = form.Credit
	case TabPayment:
		group = form.Payment
	case TabDocuments:
		group = form.Documents
	case TabDeclarations:
		group = form.Declarations
	default:
		return fmt.Errorf("unknown tab %q", tab)
	}

	var fields []FieldError
	if err := validate.Struct(group); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		for _, fe := range validationErrors {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Message: message(fe)})
		}
	}
	if tab == TabDocuments && form.PersonType == Organization && strings.TrimSpace(form.Documents.ArticlesOfIncorporation) == "" {
		fields = append(fields, FieldError{Field: "articlesOfIncorporation", Rule: "required", Message: "Campo obrigatório"})
	}

	if len(fields) > 0 {
		return &ValidationError{Tab: tab, Fields: fields}
	}
	return nil
}

// ValidateAll checks every applicable tab in order and returns the first failure.
func ValidateAll(form Form) error {
	for _, tab := range ResolveSteps(form.PersonType, form.WantsLoan) {
		if err := ValidateTab(form, tab); err != nil {
			return err
		}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "Campo obrigatório"
	case "email":
		return "E-mail inválido"
	case "cpf":
		return "CPF deve ter 11 dígitos"
	case "cnpj":
		return "CNPJ deve ter 14 dígitos"
	case "cep":
		return "CEP deve ter 8 dígitos"
	case "phone":
		return "Telefone deve ter DDD e 8 ou 9 dígitos"
	case "brl":
		return "Valor inválido"
	case "date":
		return "Data inválida, use dd/mm/aaaa"
	case "oneof":
		return "Opção inválida"
	case "min", "max", "len", "gte":
		return fmt.Sprintf("Valor fora do limite (%s %s)", fe.Tag(), fe.Param())
	default:
		return "Valor inválido"
	}
}
