package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// CreateFundBlock persists a new fund block together with the raised hold on
// its account. Both rows commit or neither does; a block without the
// matching hold would let the account spend reserved funds.
func (d Datasource) CreateFundBlock(ctx context.Context, account *model.Account, block *model.FundBlock) error {
	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin fund block transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	block.CreatedAt = time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO fund_blocks (block_reference_no, account_number, currency, blocked_amount, amount_released, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, block.BlockReferenceNo, block.AccountNumber, block.Currency, block.BlockedAmount, block.AmountReleased, block.CreatedAt)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create fund block", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET blocked_amount = $2, available_balance = $3, updated_at = NOW()
		WHERE account_number = $1
	`, account.AccountNumber, account.BlockedAmount, account.AvailableBalance)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update account hold", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Account '%s' not found", account.AccountNumber), nil)
	}

	if err := tx.Commit(); err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit fund block", err)
	}
	return nil
}

func (d Datasource) GetFundBlockByReference(ctx context.Context, reference string) (*model.FundBlock, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT block_reference_no, account_number, currency, blocked_amount, amount_released, created_at
		FROM fund_blocks
		WHERE block_reference_no = $1
	`, reference)

	block := &model.FundBlock{}
	err := row.Scan(
		&block.BlockReferenceNo,
		&block.AccountNumber,
		&block.Currency,
		&block.BlockedAmount,
		&block.AmountReleased,
		&block.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Fund block '%s' not found", reference), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve fund block", err)
	}
	return block, nil
}
