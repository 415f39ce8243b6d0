package model

import "time"

// AccountStatement is a period-end statement document for one account.
// The serialized payload is written once by the statement closer and
// treated as immutable thereafter; re-generation overwrites it.
type AccountStatement struct {
	ID                   int64     `json:"id"`
	AccountNumber        string    `json:"account_number"`
	AccountStatementDate time.Time `json:"account_statement_date"`
	AccountStatementLob  string    `json:"account_statement_lob"`
	CreatedAt            time.Time `json:"created_at"`
}
