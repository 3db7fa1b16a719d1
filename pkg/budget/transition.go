package budget

import (
	"errors"
	"fmt"
)

var ErrInvalidStatusTransition = errors.New("invalid status transition")

// Budgets leave pending through an explicit decision and never go back.
var statusTransitions = map[Status]map[Status]bool{
	StatusPending:  {StatusApproved: true, StatusRejected: true},
	StatusApproved: {},
	StatusRejected: {},
	StatusExpired:  {},
}

func CanTransition(from, to Status) bool {
	return statusTransitions[from][to]
}

func checkTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}
	return nil
}

var transitionEvents = map[Status]string{
	StatusApproved: "Orçamento aprovado",
	StatusRejected: "Orçamento rejeitado",
}
