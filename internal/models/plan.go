package models

type Network string

const (
	NetworkMTN     Network = "MTN"
	NetworkTelecel Network = "Telecel"
	NetworkAT      Network = "AT"
)

type DataPlan struct {
	ID       string  `json:"id"`
	Network  Network `json:"network"`
	Size     string  `json:"size"`
	Price    float64 `json:"price"`
	Validity string  `json:"validity"`
}

// Label is the denormalized description copied onto a transaction at
// purchase time, so catalog edits never rewrite history.
func (p DataPlan) Label() string {
	return string(p.Network) + " " + p.Size
}
