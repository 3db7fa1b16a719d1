package registration

import "time"

type PersonType string

const (
	Individual   PersonType = "individual"
	Organization PersonType = "organization"
)

// TabID names a step of the registration wizard.
type TabID string

const (
	TabPersonal     TabID = "personal"
	TabBusiness     TabID = "business"
	TabLoan         TabID = "loan"
	TabCredit       TabID = "credit"
	TabPayment      TabID = "payment"
	TabDocuments    TabID = "documents"
	TabDeclarations TabID = "declarations"
)

// AllTabs lists every tab in wizard order.
var AllTabs = []TabID{TabPersonal, TabBusiness, TabLoan, TabCredit, TabPayment, TabDocuments, TabDeclarations}

func (t TabID) Valid() bool {
	for _, tab := range AllTabs {
		if t == tab {
			return true
		}
	}
	return false
}

// Form is the wizard input. Only the groups of the applicable tabs are validated.
type Form struct {
	PersonType   PersonType   `json:"personType"`
	WantsLoan    bool         `json:"wantsLoan"`
	Personal     Personal     `json:"personal"`
	Business     Business     `json:"business"`
	Loan         Loan         `json:"loan"`
	Credit       Credit       `json:"credit"`
	Payment      Payment      `json:"payment"`
	Documents    Documents    `json:"documents"`
	Declarations Declarations `json:"declarations"`
}

// Personal holds the individual, or the legal representative of an organization.
type Personal struct {
	FullName  string `json:"fullName" validate:"required,min=3"`
	Cpf       string `json:"cpf" validate:"required,cpf"`
	BirthDate string `json:"birthDate" validate:"required,date"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required,len=2,alpha"`
	ZipCode   string `json:"zipCode" validate:"required,cep"`
}

type Business struct {
	CompanyName  string `json:"companyName" validate:"required"`
	TradeName    string `json:"tradeName"`
	Cnpj         string `json:"cnpj" validate:"required,cnpj"`
	Segment      string `json:"segment" validate:"required"`
	FoundedOn    string `json:"foundedOn" validate:"omitempty,date"`
	Employees    int    `json:"employees" validate:"gte=0"`
	AnnualIncome string `json:"annualIncome" validate:"required,brl"`
}

type Loan struct {
	Amount       string `json:"amount" validate:"required,brl"`
	Purpose      string `json:"purpose" validate:"required"`
	TermMonths   int    `json:"termMonths" validate:"required,min=1,max=120"`
	HasGuarantee bool   `json:"hasGuarantee"`
	Guarantee    string `json:"guarantee" validate:"required_if=HasGuarantee true"`
}

type Credit struct {
	MonthlyIncome  string `json:"monthlyIncome" validate:"required,brl"`
	Occupation     string `json:"occupation" validate:"required"`
	HasOtherLoans  bool   `json:"hasOtherLoans"`
	OtherLoansDebt string `json:"otherLoansDebt" validate:"required_if=HasOtherLoans true,omitempty,brl"`
}

type Payment struct {
	Method string `json:"method" validate:"required,oneof=boleto pix debito"`
	DueDay int    `json:"dueDay" validate:"required,min=1,max=28"`
	Bank   string `json:"bank" validate:"required_if=Method debito"`
	Agency string `json:"agency" validate:"required_if=Method debito,omitempty,numeric"`
	// Account allows a check digit after a dash, "12345-6".
	Account string `json:"account" validate:"required_if=Method debito"`
}

// Documents holds the names of the uploaded files.
type Documents struct {
	IdentityDocument        string `json:"identityDocument" validate:"required"`
	ProofOfAddress          string `json:"proofOfAddress" validate:"required"`
	ProofOfIncome           string `json:"proofOfIncome"`
	ArticlesOfIncorporation string `json:"articlesOfIncorporation"`
}

type Declarations struct {
	InformationIsTrue bool `json:"informationIsTrue" validate:"required"`
	AcceptTerms       bool `json:"acceptTerms" validate:"required"`
	AcceptPrivacy     bool `json:"acceptPrivacy" validate:"required"`
	Marketing         bool `json:"marketing"`
}

// Draft is a wizard in progress. ClientId is zero unless the draft edits an existing client.
type Draft struct {
	Uid         string
	ClientId    int
	Form        Form
	CurrentStep int
	ActiveTab   TabID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tabs returns the tabs applicable to the draft's form.
func (d Draft) Tabs() []TabID {
	return ResolveSteps(d.Form.PersonType, d.Form.WantsLoan)
}
