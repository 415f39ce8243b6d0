package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a remitting bank account. AvailableBalance is always derived
// from BookBalance and BlockedAmount; it is never assigned independently.
type Account struct {
	ID                 int64           `json:"-"`
	AccountNumber      string          `json:"account_number"`
	AccountHolderName  string          `json:"account_holder_name"`
	AccountHolderPhone string          `json:"account_holder_phone"`
	AccountCurrency    string          `json:"account_currency"`
	BookBalance        decimal.Decimal `json:"book_balance"`
	BlockedAmount      decimal.Decimal `json:"blocked_amount"`
	AvailableBalance   decimal.Decimal `json:"available_balance"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ApplyDebit settles amount out of the account's blocked funds. A positive
// amount converts part of a hold into an actual balance decrease; a negative
// amount nets a previous debit back out during compensation.
func (a *Account) ApplyDebit(amount decimal.Decimal) {
	a.BookBalance = a.BookBalance.Sub(amount)
	a.BlockedAmount = a.BlockedAmount.Sub(amount)
	a.computeAvailableBalance()
}

// ApplyBlock places a hold of amount on the account without touching the
// book balance.
func (a *Account) ApplyBlock(amount decimal.Decimal) {
	a.BlockedAmount = a.BlockedAmount.Add(amount)
	a.computeAvailableBalance()
}

// CanBlock reports whether the account has enough available balance to
// carry an additional hold of amount.
func (a *Account) CanBlock(amount decimal.Decimal) bool {
	return a.AvailableBalance.GreaterThanOrEqual(amount)
}

func (a *Account) computeAvailableBalance() {
	a.AvailableBalance = a.BookBalance.Sub(a.BlockedAmount)
}
