package budget

// Status of a budget (orçamento). Values are the Portuguese labels stored with the records.
type Status string

const (
	StatusPending  Status = "pendente"
	StatusApproved Status = "aprovado"
	StatusRejected Status = "rejeitado"
	StatusExpired  Status = "expirado"

	// StatusAll disables the status criterion when filtering.
	StatusAll Status = "todos"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusExpired}

func (s Status) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

type Client struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Budget is a priced proposal sent to a client. Value and dates keep their display form
// ("R$ 22.500,00", "15/03/2024"); ParseCurrency and ParseDate turn them into comparable values.
type Budget struct {
	Id           string
	Client       Client
	Value        string
	IssueDate    string
	ExpiryDate   string
	Status       Status
	PaymentTerms string
	Items        []Item
	History      []HistoryEvent
	Attachments  []Attachment
}

type Item struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Total     string `json:"total"`
}

type HistoryEvent struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Actor     string `json:"actor"`
}

type Attachment struct {
	Name string `json:"name"`
	Size string `json:"size"`
}
