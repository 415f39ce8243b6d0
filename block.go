package bank

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// CheckFundsAvailability reports whether an account can carry an additional
// hold of amount.
func (b *Bank) CheckFundsAvailability(ctx context.Context, accountNumber string, amount decimal.Decimal) (bool, error) {
	account, err := b.datasource.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		return false, err
	}
	return account.CanBlock(amount), nil
}

// BlockFunds places a hold on an account and records the fund block backing
// it. The hold and the block row commit together; settlement later draws the
// blocked amount down through the block reference.
func (b *Bank) BlockFunds(ctx context.Context, accountNumber, currency string, amount decimal.Decimal) (*model.FundBlock, error) {
	ctx, span := tracer.Start(ctx, "Blocking funds")
	defer span.End()

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Block amount must be positive", nil)
	}

	account, err := b.datasource.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if currency != account.AccountCurrency {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("Currency '%s' does not match account currency '%s'", currency, account.AccountCurrency), nil)
	}
	if !account.CanBlock(amount) {
		return nil, apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Insufficient available balance on account '%s'", accountNumber), nil)
	}

	account.ApplyBlock(amount)
	block := &model.FundBlock{
		BlockReferenceNo: model.GenerateUUIDWithSuffix("blk"),
		AccountNumber:    account.AccountNumber,
		Currency:         currency,
		BlockedAmount:    amount,
		AmountReleased:   decimal.Zero,
	}

	if err := b.datasource.CreateFundBlock(ctx, account, block); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logrus.Infof("blocked %s %s on account %s under %s", amount, currency, accountNumber, block.BlockReferenceNo)
	return block, nil
}

func (b *Bank) GetFundBlock(ctx context.Context, reference string) (*model.FundBlock, error) {
	return b.datasource.GetFundBlockByReference(ctx, reference)
}
