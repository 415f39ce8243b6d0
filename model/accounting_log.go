package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebitCredit classifies an accounting entry.
type DebitCredit string

const (
	Debit  DebitCredit = "DEBIT"
	Credit DebitCredit = "CREDIT"
)

// TransactionCodeDebit is the transaction code stamped on settlement
// entries.
const TransactionCodeDebit = "DBT"

// FailureReasons is the closed set of simulated failure reasons substituted
// into the last narrative slot of a reversal entry.
var FailureReasons = []string{
	"ACCOUNT_CLOSED",
	"ACCOUNT_NOT_FOUND",
	"ACCOUNT_DORMANT",
	"ACCOUNT_DECEASED",
}

// AccountingLog is one entry of the append-only double-entry trail. Entries
// are never updated or deleted; a reversal is a new entry with the negated
// amount. The audit property of the ledger depends on this.
type AccountingLog struct {
	ID                            int64           `json:"-"`
	ReferenceNo                   string          `json:"reference_no"`
	CorrespondingBlockReferenceNo string          `json:"corresponding_block_reference_no"`
	CustomerReferenceNo           string          `json:"customer_reference_no"`
	DebitCredit                   DebitCredit     `json:"debit_credit"`
	AccountNumber                 string          `json:"account_number"`
	TransactionAmount             decimal.Decimal `json:"transaction_amount"`
	TransactionDate               time.Time       `json:"transaction_date"`
	TransactionCurrency           string          `json:"transaction_currency"`
	TransactionCode               string          `json:"transaction_code"`
	Narrative1                    string          `json:"narrative_1"`
	Narrative2                    string          `json:"narrative_2"`
	Narrative3                    string          `json:"narrative_3"`
	Narrative4                    string          `json:"narrative_4"`
	Narrative5                    string          `json:"narrative_5"`
	Narrative6                    string          `json:"narrative_6"`
	Active                        bool            `json:"active"`
}

// IsReversal reports whether the entry compensates an earlier one. Reversal
// entries carry the negated amount under the original classification.
func (l *AccountingLog) IsReversal() bool {
	return l.TransactionAmount.IsNegative()
}
