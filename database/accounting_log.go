package database

import (
	"context"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// GetAccountingLogs returns the full accounting trail for an account in
// insertion order. Entries are append-only; there is no update path.
func (d Datasource) GetAccountingLogs(ctx context.Context, accountNumber string) ([]model.AccountingLog, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT reference_no, corresponding_block_reference_no, customer_reference_no, debit_credit, account_number, transaction_amount, transaction_date, transaction_currency, transaction_code, narrative_1, narrative_2, narrative_3, narrative_4, narrative_5, narrative_6, active
		FROM accounting_logs
		WHERE account_number = $1
		ORDER BY id
	`, accountNumber)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve accounting logs", err)
	}
	defer rows.Close()

	var logs []model.AccountingLog
	for rows.Next() {
		entry := model.AccountingLog{}
		err = rows.Scan(
			&entry.ReferenceNo,
			&entry.CorrespondingBlockReferenceNo,
			&entry.CustomerReferenceNo,
			&entry.DebitCredit,
			&entry.AccountNumber,
			&entry.TransactionAmount,
			&entry.TransactionDate,
			&entry.TransactionCurrency,
			&entry.TransactionCode,
			&entry.Narrative1,
			&entry.Narrative2,
			&entry.Narrative3,
			&entry.Narrative4,
			&entry.Narrative5,
			&entry.Narrative6,
			&entry.Active,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan accounting log data", err)
		}
		logs = append(logs, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over accounting logs", err)
	}

	return logs, nil
}
