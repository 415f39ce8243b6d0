package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// RequestAccountStatement records a statement request for an account and
// date. The payload stays empty until the statement closer fills it.
func (d Datasource) RequestAccountStatement(ctx context.Context, accountNumber string, statementDate time.Time) (*model.AccountStatement, error) {
	statement := &model.AccountStatement{
		AccountNumber:        accountNumber,
		AccountStatementDate: statementDate,
		CreatedAt:            time.Now(),
	}

	err := d.Conn.QueryRowContext(ctx, `
		INSERT INTO account_statements (account_number, account_statement_date, account_statement_lob, created_at)
		VALUES ($1, $2, '', $3)
		RETURNING id
	`, statement.AccountNumber, statement.AccountStatementDate, statement.CreatedAt).Scan(&statement.ID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to request account statement", err)
	}

	return statement, nil
}

func (d Datasource) GetAccountStatement(ctx context.Context, id int64) (*model.AccountStatement, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT id, account_number, account_statement_date, account_statement_lob, created_at
		FROM account_statements
		WHERE id = $1
	`, id)

	statement := &model.AccountStatement{}
	err := row.Scan(&statement.ID, &statement.AccountNumber, &statement.AccountStatementDate, &statement.AccountStatementLob, &statement.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account statement '%d' not found", id), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve account statement", err)
	}
	return statement, nil
}

// SaveAccountStatementLob stores the serialized statement document.
// Re-generation overwrites rather than appends.
func (d Datasource) SaveAccountStatementLob(ctx context.Context, id int64, lob string) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE account_statements
		SET account_statement_lob = $2
		WHERE id = $1
	`, id, lob)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to save account statement", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account statement '%d' not found", id), nil)
	}

	return nil
}
