package notification

import "time"

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Notification struct {
	Uid       string
	Kind      Kind
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
