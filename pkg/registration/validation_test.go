package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm(personType PersonType, wantsLoan bool) Form {
	return Form{
		PersonType: personType,
		WantsLoan:  wantsLoan,
		Personal: Personal{
			FullName:  "Pedro Almeida",
			Cpf:       "123.456.789-09",
			BirthDate: "15/08/1985",
			Email:     "pedro.almeida@email.com",
			Phone:     "(21) 98765-4321",
			Address:   "Rua das Laranjeiras, 250",
			City:      "Rio de Janeiro",
			State:     "RJ",
			ZipCode:   "22240-000",
		},
		Business: Business{
			CompanyName:  "Empresa XYZ Inc",
			TradeName:    "XYZ",
			Cnpj:         "12.345.678/0001-95",
			Segment:      "Serviços",
			Employees:    12,
			AnnualIncome: "R$ 1.200.000,00",
		},
		Loan: Loan{
			Amount:     "R$ 50.000,00",
			Purpose:    "Capital de giro",
			TermMonths: 24,
		},
		Credit: Credit{
			MonthlyIncome: "R$ 8.000,00",
			Occupation:    "Engenheiro",
		},
		Payment: Payment{Method: "pix", DueDay: 10},
		Documents: Documents{
			IdentityDocument:        "rg.pdf",
			ProofOfAddress:          "conta_luz.pdf",
			ArticlesOfIncorporation: "contrato_social.pdf",
		},
		Declarations: Declarations{InformationIsTrue: true, AcceptTerms: true, AcceptPrivacy: true},
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	names := make([]string, 0, len(validationErr.Fields))
	for _, f := range validationErr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateTab_ValidForm(t *testing.T) {
	form := validForm(Organization, true)

	for _, tab := range AllTabs {
		assert.NoError(t, ValidateTab(form, tab), tab)
	}
	assert.NoError(t, ValidateAll(form))
}

func TestValidateTab_Personal(t *testing.T) {
	t.Run("should list every missing field of an empty tab", func(t *testing.T) {
		err := ValidateTab(Form{}, TabPersonal)

		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Equal(t, []string{"fullName", "cpf", "birthDate", "email", "phone", "address", "city", "state", "zipCode"}, fieldNames(t, err))
	})

	t.Run("should check document formats", func(t *testing.T) {
		form := validForm(Individual, false)
		form.Personal.Cpf = "123.456.789"
		form.Personal.Email = "pedro"
		form.Personal.ZipCode = "2224-000"
		form.Personal.BirthDate = "31/02/1985"
		form.Personal.Phone = "98765-4321"

		err := ValidateTab(form, TabPersonal)

		assert.Equal(t, []string{"cpf", "birthDate", "email", "phone", "zipCode"}, fieldNames(t, err))
	})

	t.Run("should report rule and message", func(t *testing.T) {
		form := validForm(Individual, false)
		form.Personal.Cpf = "abc12345678901"

		err := ValidateTab(form, TabPersonal)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []FieldError{{Field: "cpf", Rule: "cpf", Message: "CPF deve ter 11 dígitos"}}, validationErr.Fields)
		assert.Equal(t, TabPersonal, validationErr.Tab)
	})
}

func TestValidateTab_ConditionalFields(t *testing.T) {
	t.Run("should require guarantee description when offered", func(t *testing.T) {
		form := validForm(Individual, true)
		form.Loan.HasGuarantee = true

		assert.Equal(t, []string{"guarantee"}, fieldNames(t, ValidateTab(form, TabLoan)))

		form.Loan.Guarantee = "Imóvel"
		assert.NoError(t, ValidateTab(form, TabLoan))
	})

	t.Run("should require bank account for debit", func(t *testing.T) {
		form := validForm(Individual, true)
		form.Payment.Method = "debito"
		form.Payment.Agency = "12a4"

		assert.Equal(t, []string{"bank", "agency", "account"}, fieldNames(t, ValidateTab(form, TabPayment)))
	})

	t.Run("should reject non positive amounts", func(t *testing.T) {
		form := validForm(Individual, true)
		form.Loan.Amount = "R$ 0,00"
		form.Loan.TermMonths = 240

		assert.Equal(t, []string{"amount", "termMonths"}, fieldNames(t, ValidateTab(form, TabLoan)))
	})

	t.Run("should require articles of incorporation for organizations only", func(t *testing.T) {
		form := validForm(Individual, false)
		form.Documents.ArticlesOfIncorporation = ""
		assert.NoError(t, ValidateTab(form, TabDocuments))

		form.PersonType = Organization
		assert.Equal(t, []string{"articlesOfIncorporation"}, fieldNames(t, ValidateTab(form, TabDocuments)))
	})

	t.Run("should require every declaration", func(t *testing.T) {
		form := validForm(Individual, false)
		form.Declarations.AcceptPrivacy = false

		assert.Equal(t, []string{"acceptPrivacy"}, fieldNames(t, ValidateTab(form, TabDeclarations)))
	})
}

func TestValidateAll_OnlyApplicableTabs(t *testing.T) {
	form := validForm(Individual, false)
	form.Business = Business{}
	form.Loan = Loan{}

	assert.NoError(t, ValidateAll(form))

	form.WantsLoan = true
	var validationErr *ValidationError
	require.ErrorAs(t, ValidateAll(form), &validationErr)
	assert.Equal(t, TabLoan, validationErr.Tab)
}

func TestValidateTab_UnknownTab(t *testing.T) {
	err := ValidateTab(Form{}, "extras")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidationFailed)
}
