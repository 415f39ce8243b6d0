package bank

import (
	"context"
	"time"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// CreateAccount opens a new account. The account number is generated when
// the caller does not supply one.
func (b *Bank) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	ctx, span := tracer.Start(ctx, "Creating account")
	defer span.End()

	if account.AccountNumber == "" {
		account.AccountNumber = model.GenerateUUIDWithSuffix("acc")
	}
	if account.AccountCurrency == "" {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Account currency is required", nil)
	}

	created, err := b.datasource.CreateAccount(ctx, account)
	if err != nil {
		span.RecordError(err)
		return model.Account{}, err
	}
	return created, nil
}

func (b *Bank) GetAccountByNumber(ctx context.Context, accountNumber string) (*model.Account, error) {
	return b.datasource.GetAccountByNumber(ctx, accountNumber)
}

func (b *Bank) GetAccountByPhone(ctx context.Context, phoneNumber string) (*model.Account, error) {
	return b.datasource.GetAccountByPhone(ctx, phoneNumber)
}

func (b *Bank) GetAllAccounts(ctx context.Context) ([]model.Account, error) {
	return b.datasource.GetAllAccounts(ctx)
}

// RequestAccountStatement records a statement request and queues its
// generation. The caller gets the request row back immediately; the MT940
// payload is filled in by a worker.
func (b *Bank) RequestAccountStatement(ctx context.Context, accountNumber string) (*model.AccountStatement, error) {
	ctx, span := tracer.Start(ctx, "Requesting account statement")
	defer span.End()

	account, err := b.datasource.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	statement, err := b.datasource.RequestAccountStatement(ctx, account.AccountNumber, time.Now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := b.queue.EnqueueStatement(statement.ID); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return statement, nil
}

// GetAccountStatement returns a statement request with whatever payload has
// been generated so far.
func (b *Bank) GetAccountStatement(ctx context.Context, statementID int64) (*model.AccountStatement, error) {
	return b.datasource.GetAccountStatement(ctx, statementID)
}
