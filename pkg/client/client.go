package client

import (
	"encoding/json"
	"time"
)

type PersonType string

const (
	Individual   PersonType = "individual"
	Organization PersonType = "organization"
)

// Client is a registered customer. Form keeps the registration wizard input it was created from, so
// the wizard can be reopened pre-populated.
type Client struct {
	Id          int
	Uid         string
	PersonType  PersonType
	Name        string
	Document    string
	Email       string
	Phone       string
	Address     string
	CompanyName string
	TradeName   string
	WantsLoan   bool
	LoanAmount  string
	Form        json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
