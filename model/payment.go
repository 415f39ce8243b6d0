package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BatchStatusPending   = "PENDING"
	BatchStatusProcessed = "PROCESSED"

	InstructionStatusPending = "PENDING"
	InstructionStatusSuccess = "SUCCESS"
	InstructionStatusFailed  = "FAILED"
)

// PaymentBatch groups payment instructions dispatched and retried together
// as one unit.
type PaymentBatch struct {
	ID                      int64     `json:"-"`
	BatchID                 string    `json:"batch_id"`
	PaymentStatus           string    `json:"payment_status"`
	PaymentInitiateAttempts int       `json:"payment_initiate_attempts"`
	CreatedAt               time.Time `json:"created_at"`
}

// Dispatchable reports whether the batch is still eligible for a settlement
// pass under the configured attempt budget.
func (b *PaymentBatch) Dispatchable(maxAttempts int) bool {
	return b.PaymentStatus == BatchStatusPending && b.PaymentInitiateAttempts < maxAttempts
}

// PaymentInstruction is a single pre-authorized payment inside a batch.
// Status and Attempts track the retry state, not the accounting outcome.
type PaymentInstruction struct {
	ID                          int64           `json:"-"`
	BatchID                     string          `json:"batch_id"`
	PaymentReferenceNumber      string          `json:"payment_reference_number"`
	RemittingAccount            string          `json:"remitting_account"`
	RemittingAccountCurrency    string          `json:"remitting_account_currency"`
	PaymentAmount               decimal.Decimal `json:"payment_amount"`
	FundsBlockedReferenceNumber string          `json:"funds_blocked_reference_number"`
	Narrative1                  string          `json:"narrative_1"`
	Narrative2                  string          `json:"narrative_2"`
	Narrative3                  string          `json:"narrative_3"`
	Narrative4                  string          `json:"narrative_4"`
	Narrative5                  string          `json:"narrative_5"`
	Narrative6                  string          `json:"narrative_6"`
	Status                      string          `json:"status"`
	Attempts                    int             `json:"attempts"`
	CreatedAt                   time.Time       `json:"created_at"`
}

// Eligible reports whether the instruction should be picked up by a
// settlement pass. Instructions that reached SUCCESS are never re-settled.
func (p *PaymentInstruction) Eligible(maxAttempts int) bool {
	if p.Status != InstructionStatusPending && p.Status != InstructionStatusFailed {
		return false
	}
	return p.Attempts < maxAttempts
}
