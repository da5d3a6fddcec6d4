// model/loanhistory.go
package model

type LoanStatus string

const (
	StatusLoaned   LoanStatus = "LOANED"
	StatusReturned LoanStatus = "RETURNED"
)

// LoanHistory is one loan event. It starts LOANED and can only move to
// RETURNED; a re-loan of the same book creates a new record.
type LoanHistory struct {
	ID       int64      `json:"id"`
	UserID   int64      `json:"user_id"`
	BookName string     `json:"book_name"`
	Status   LoanStatus `json:"status"`
}

func (h *LoanHistory) DoReturn() { h.Status = StatusReturned }

func (h *LoanHistory) IsReturn() bool { return h.Status == StatusReturned }
