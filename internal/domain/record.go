package domain

// Record holds the purchase-order fields collected during a dialogue.
// Fields stay empty until their step has run; RequesterName is captured
// from the chat user at the justification step, never asked explicitly.
// The PO identifier and row timestamp are not part of the record: the
// sink generates both at append time.
type Record struct {
	ItemDescription string
	QuantityAmount  string
	SupplierVendor  string
	Justification   string
	RequesterName   string
}

// Empty reports whether nothing has been collected yet.
func (r Record) Empty() bool {
	return r == Record{}
}

// Session is one user's in-progress purchase-order dialogue. At most one
// exists per user at a time; it is created on begin, mutated by each valid
// input, and deleted on cancel or after the one finalize attempt.
type Session struct {
	UserID    UserID
	Step      Step
	Record    Record
	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// NewSession returns a fresh session at the first step with nothing collected.
func NewSession(user UserID, now Timestamp) *Session {
	return &Session{
		UserID:    user,
		Step:      StepAwaitingItem,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
