/*
Copyright 2025 The OpenG2P Example Bank Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bank

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/mt940"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// accountIdentifier is the fixed institution identifier on the :25: line.
const accountIdentifier = "000001"

// GenerateStatement renders the MT940 document for a requested statement
// and stores it on the request row. The statement covers the account's full
// accounting trail, so re-generation overwrites with a superset of the
// previous document.
func (b *Bank) GenerateStatement(ctx context.Context, statementID int64) error {
	ctx, span := tracer.Start(ctx, "Generating account statement")
	defer span.End()

	statement, err := b.datasource.GetAccountStatement(ctx, statementID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	account, err := b.datasource.GetAccountByNumber(ctx, statement.AccountNumber)
	if err != nil {
		span.RecordError(err)
		return err
	}
	logs, err := b.datasource.GetAccountingLogs(ctx, statement.AccountNumber)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if len(logs) == 0 {
		logrus.Infof("no accounting logs for account %s, statement %d left empty", statement.AccountNumber, statementID)
		return nil
	}

	document := renderStatement(b.cnf, statement, account, logs)
	if err := b.datasource.SaveAccountStatementLob(ctx, statementID, document); err != nil {
		return err
	}

	logrus.Infof("account statement %d generated for account %s (%d entries)", statementID, statement.AccountNumber, len(logs))
	return nil
}

func renderStatement(conf *config.Configuration, statement *model.AccountStatement, account *model.Account, logs []model.AccountingLog) string {
	opening, err := decimal.NewFromString(conf.Settlement.StatementOpeningBalance)
	if err != nil {
		opening, _ = decimal.NewFromString(config.DefaultOpeningBalance)
	}

	transactions := make([]mt940.Transaction, 0, len(logs))
	for _, entry := range logs {
		transactions = append(transactions, mt940.NewTransaction(
			entry.TransactionDate,
			entry.TransactionDate,
			statementMark(entry),
			entry.TransactionAmount.Abs(),
			mt940.TypeTransfer,
			entry.CustomerReferenceNo,
			entry.ReferenceNo,
			"",
			"",
			narrativeBlock(entry),
		))
	}

	doc := mt940.Statement{
		ReferenceNumber: strconv.FormatInt(statement.ID, 10),
		Account:         mt940.Account{Number: account.AccountNumber, Identifier: accountIdentifier},
		StatementNumber: "1/1",
		OpeningBalance:  mt940.Balance{Amount: opening, Date: statement.AccountStatementDate, Currency: account.AccountCurrency},
		ClosingBalance:  mt940.Balance{Amount: account.BookBalance, Date: statement.AccountStatementDate, Currency: account.AccountCurrency},
		Transactions:    transactions,
	}
	return doc.String()
}

// statementMark maps an accounting entry to its :61: debit/credit mark.
// Reversal entries keep their original classification under an R prefix.
func statementMark(entry model.AccountingLog) string {
	switch {
	case entry.DebitCredit == model.Debit && entry.IsReversal():
		return "RD"
	case entry.DebitCredit == model.Credit && entry.IsReversal():
		return "RC"
	case entry.DebitCredit == model.Credit:
		return "C"
	default:
		return "D"
	}
}

func narrativeBlock(entry model.AccountingLog) string {
	return strings.Join([]string{
		entry.Narrative1,
		entry.Narrative2,
		entry.Narrative3,
		entry.Narrative4,
		entry.Narrative5,
		entry.Narrative6,
	}, "\n")
}
