package domain

import "time"

type UserID string

// Step is the dialogue position of a session: which input the bot is
// waiting for next. The zero value is not a valid step.
type Step int

const (
	StepAwaitingItem Step = iota + 1
	StepAwaitingAmount
	StepAwaitingSupplier
	StepAwaitingJustification
	StepAwaitingConfirmation
)

func (s Step) String() string {
	switch s {
	case StepAwaitingItem:
		return "awaiting_item"
	case StepAwaitingAmount:
		return "awaiting_amount"
	case StepAwaitingSupplier:
		return "awaiting_supplier"
	case StepAwaitingJustification:
		return "awaiting_justification"
	case StepAwaitingConfirmation:
		return "awaiting_confirmation"
	default:
		return "undefined"
	}
}

// Valid reports whether s is one of the named steps. Sessions decoded from
// an external store can carry anything, so callers should not assume it.
func (s Step) Valid() bool {
	return s >= StepAwaitingItem && s <= StepAwaitingConfirmation
}

type Timestamp = time.Time
