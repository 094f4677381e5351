package domain

import "time"

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusRecorded  SaleStatus = "recorded"
)

// Sale is the ledger entry for one successful purchase.
type Sale struct {
	ID         string
	MachineID  string
	Selection  int
	RecipeName string
	Price      int
	Paid       int
	Change     int
	Status     SaleStatus
	CreatedAt  time.Time
}
