package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FundBlock is a hold placed on part of an account's balance, reserving
// funds for payments before they settle. BlockedAmount is the original hold
// and never changes; AmountReleased tracks how much of the hold has been
// consumed by settled or reversed instructions.
type FundBlock struct {
	ID               int64           `json:"-"`
	BlockReferenceNo string          `json:"block_reference_no"`
	AccountNumber    string          `json:"account_number"`
	Currency         string          `json:"currency"`
	BlockedAmount    decimal.Decimal `json:"blocked_amount"`
	AmountReleased   decimal.Decimal `json:"amount_released"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ApplyRelease consumes amount of the hold. A negative amount restores a
// previous release during compensation. Releasing past the original hold
// corrupts the ledger, so it fails instead of going through.
func (f *FundBlock) ApplyRelease(amount decimal.Decimal) error {
	released := f.AmountReleased.Add(amount)
	if released.GreaterThan(f.BlockedAmount) {
		return fmt.Errorf("release of %s exceeds blocked amount %s on block %s", amount.String(), f.BlockedAmount.String(), f.BlockReferenceNo)
	}
	f.AmountReleased = released
	return nil
}
