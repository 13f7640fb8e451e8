package dto

// CashflowDay содержит приход и расход за один день.
type CashflowDay struct {
	Date string  `json:"date"`
	In   float64 `json:"in"`
	Out  float64 `json:"out"`
}

// CashflowReport содержит итоги движения средств за период.
type CashflowReport struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	TotalReceived float64        `json:"total_received"`
	TotalPaid     float64        `json:"total_paid"`
	Balance       float64        `json:"balance"`
	Timeline      []*CashflowDay `json:"timeline"`
}
