package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

const accountColumns = `account_number, account_holder_name, account_holder_phone, account_currency, book_balance, blocked_amount, available_balance, created_at`

func (d Datasource) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	account.CreatedAt = time.Now()
	account.AvailableBalance = account.BookBalance.Sub(account.BlockedAmount)

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO accounts (account_number, account_holder_name, account_holder_phone, account_currency, book_balance, blocked_amount, available_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, account.AccountNumber, account.AccountHolderName, account.AccountHolderPhone, account.AccountCurrency, account.BookBalance, account.BlockedAmount, account.AvailableBalance, account.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return model.Account{}, apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Account with number '%s' already exists", account.AccountNumber), err)
		}
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create account", err)
	}

	return account, nil
}

func (d Datasource) GetAccountByNumber(ctx context.Context, number string) (*model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_number = $1
	`, number)

	return scanAccount(row, number)
}

func (d Datasource) GetAccountByPhone(ctx context.Context, phone string) (*model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_holder_phone = $1
	`, phone)

	return scanAccount(row, phone)
}

func (d Datasource) GetAllAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve accounts", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		account := model.Account{}
		err = rows.Scan(
			&account.AccountNumber,
			&account.AccountHolderName,
			&account.AccountHolderPhone,
			&account.AccountCurrency,
			&account.BookBalance,
			&account.BlockedAmount,
			&account.AvailableBalance,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan account data", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over accounts", err)
	}

	return accounts, nil
}

func scanAccount(row *sql.Row, key string) (*model.Account, error) {
	account := &model.Account{}
	err := row.Scan(
		&account.AccountNumber,
		&account.AccountHolderName,
		&account.AccountHolderPhone,
		&account.AccountCurrency,
		&account.BookBalance,
		&account.BlockedAmount,
		&account.AvailableBalance,
		&account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account '%s' not found", key), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve account", err)
	}
	return account, nil
}
