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

// CreatePaymentBatch persists a batch and its instructions in one
// transaction.
func (d Datasource) CreatePaymentBatch(ctx context.Context, batch *model.PaymentBatch, instructions []*model.PaymentInstruction) error {
	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin batch transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	batch.CreatedAt = time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO payment_batches (batch_id, payment_status, payment_initiate_attempts, created_at)
		VALUES ($1, $2, $3, $4)
	`, batch.BatchID, batch.PaymentStatus, batch.PaymentInitiateAttempts, batch.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Batch '%s' already exists", batch.BatchID), err)
		}
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create payment batch", err)
	}

	for _, instruction := range instructions {
		instruction.CreatedAt = batch.CreatedAt
		_, err = tx.ExecContext(ctx, `
			INSERT INTO payment_instructions (batch_id, payment_reference_number, remitting_account, remitting_account_currency, payment_amount, funds_blocked_reference_number, narrative_1, narrative_2, narrative_3, narrative_4, narrative_5, narrative_6, status, attempts, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, instruction.BatchID, instruction.PaymentReferenceNumber, instruction.RemittingAccount, instruction.RemittingAccountCurrency, instruction.PaymentAmount, instruction.FundsBlockedReferenceNumber, instruction.Narrative1, instruction.Narrative2, instruction.Narrative3, instruction.Narrative4, instruction.Narrative5, instruction.Narrative6, instruction.Status, instruction.Attempts, instruction.CreatedAt)
		if err != nil {
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create payment instruction", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit payment batch", err)
	}
	return nil
}

func (d Datasource) GetPaymentBatch(ctx context.Context, batchID string) (*model.PaymentBatch, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT batch_id, payment_status, payment_initiate_attempts, created_at
		FROM payment_batches
		WHERE batch_id = $1
	`, batchID)

	batch := &model.PaymentBatch{}
	err := row.Scan(&batch.BatchID, &batch.PaymentStatus, &batch.PaymentInitiateAttempts, &batch.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Batch '%s' not found", batchID), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve payment batch", err)
	}
	return batch, nil
}

// GetPendingBatches returns every batch still eligible for dispatch under
// the attempt budget. Batches past the budget stay behind until someone
// intervenes.
func (d Datasource) GetPendingBatches(ctx context.Context, maxAttempts int) ([]model.PaymentBatch, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT batch_id, payment_status, payment_initiate_attempts, created_at
		FROM payment_batches
		WHERE payment_status = $1 AND payment_initiate_attempts < $2
		ORDER BY created_at
	`, model.BatchStatusPending, maxAttempts)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve pending batches", err)
	}
	defer rows.Close()

	var batches []model.PaymentBatch
	for rows.Next() {
		batch := model.PaymentBatch{}
		if err := rows.Scan(&batch.BatchID, &batch.PaymentStatus, &batch.PaymentInitiateAttempts, &batch.CreatedAt); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan batch data", err)
		}
		batches = append(batches, batch)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over batches", err)
	}

	return batches, nil
}

func (d Datasource) GetInstructionsForBatch(ctx context.Context, batchID string) ([]*model.PaymentInstruction, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, batch_id, payment_reference_number, remitting_account, remitting_account_currency, payment_amount, funds_blocked_reference_number, narrative_1, narrative_2, narrative_3, narrative_4, narrative_5, narrative_6, status, attempts, created_at
		FROM payment_instructions
		WHERE batch_id = $1
		ORDER BY id
	`, batchID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve payment instructions", err)
	}
	defer rows.Close()

	var instructions []*model.PaymentInstruction
	for rows.Next() {
		instruction := &model.PaymentInstruction{}
		err = rows.Scan(
			&instruction.ID,
			&instruction.BatchID,
			&instruction.PaymentReferenceNumber,
			&instruction.RemittingAccount,
			&instruction.RemittingAccountCurrency,
			&instruction.PaymentAmount,
			&instruction.FundsBlockedReferenceNumber,
			&instruction.Narrative1,
			&instruction.Narrative2,
			&instruction.Narrative3,
			&instruction.Narrative4,
			&instruction.Narrative5,
			&instruction.Narrative6,
			&instruction.Status,
			&instruction.Attempts,
			&instruction.CreatedAt,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan instruction data", err)
		}
		instructions = append(instructions, instruction)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over instructions", err)
	}

	return instructions, nil
}

// CommitSettlementPass persists everything one batch pass touched as a
// single transaction: account balances, fund-block release totals, new
// accounting entries, instruction statuses and the batch status itself.
// The transaction boundary is the sole rollback mechanism of a pass; there
// is no compensating-action replay.
func (d Datasource) CommitSettlementPass(ctx context.Context, pass *model.SettlementPass) error {
	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin settlement transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, account := range pass.Accounts {
		_, err = tx.ExecContext(ctx, `
			UPDATE accounts
			SET book_balance = $2, blocked_amount = $3, available_balance = $4, updated_at = NOW()
			WHERE account_number = $1
		`, account.AccountNumber, account.BookBalance, account.BlockedAmount, account.AvailableBalance)
		if err != nil {
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update account balances", err)
		}
	}

	for _, block := range pass.FundBlocks {
		_, err = tx.ExecContext(ctx, `
			UPDATE fund_blocks
			SET amount_released = $2
			WHERE block_reference_no = $1
		`, block.BlockReferenceNo, block.AmountReleased)
		if err != nil {
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update fund block", err)
		}
	}

	for _, entry := range pass.Logs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO accounting_logs (reference_no, corresponding_block_reference_no, customer_reference_no, debit_credit, account_number, transaction_amount, transaction_date, transaction_currency, transaction_code, narrative_1, narrative_2, narrative_3, narrative_4, narrative_5, narrative_6, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, entry.ReferenceNo, entry.CorrespondingBlockReferenceNo, entry.CustomerReferenceNo, entry.DebitCredit, entry.AccountNumber, entry.TransactionAmount, entry.TransactionDate, entry.TransactionCurrency, entry.TransactionCode, entry.Narrative1, entry.Narrative2, entry.Narrative3, entry.Narrative4, entry.Narrative5, entry.Narrative6, entry.Active)
		if err != nil {
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record accounting entry", err)
		}
	}

	for _, instruction := range pass.Instructions {
		_, err = tx.ExecContext(ctx, `
			UPDATE payment_instructions
			SET status = $2, attempts = $3
			WHERE id = $1
		`, instruction.ID, instruction.Status, instruction.Attempts)
		if err != nil {
			return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update instruction status", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE payment_batches
		SET payment_status = $2, payment_initiate_attempts = $3
		WHERE batch_id = $1
	`, pass.Batch.BatchID, pass.Batch.PaymentStatus, pass.Batch.PaymentInitiateAttempts)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update batch status", err)
	}

	if err := tx.Commit(); err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit settlement pass", err)
	}
	return nil
}

// MarkBatchRetry returns a failed batch to PENDING and records the spent
// attempt. Runs outside the pass transaction on purpose: the attempt has to
// survive the rollback.
func (d Datasource) MarkBatchRetry(ctx context.Context, batchID string) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE payment_batches
		SET payment_status = $2, payment_initiate_attempts = payment_initiate_attempts + 1
		WHERE batch_id = $1
	`, batchID, model.BatchStatusPending)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to mark batch for retry", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Batch '%s' not found", batchID), nil)
	}

	return nil
}
