package models

type Status string

const (
	StatusPending Status = "Pending"
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusSuccess || s == StatusFailed
}

// Terminal statuses never transition again.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// CanTransition reports whether a record currently in s may move to next.
// Only Pending orders move, and only to a terminal status.
func (s Status) CanTransition(next Status) bool {
	return s == StatusPending && next.Terminal()
}

type Transaction struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Status    Status  `json:"status"`
	Date      string  `json:"date"`
	Recipient string  `json:"recipient"`
	Plan      string  `json:"plan"`
	Network   Network `json:"network,omitempty"`
}
