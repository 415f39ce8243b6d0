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

package database

import (
	"context"
	"time"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	account       // Account lookup and onboarding
	fundBlock     // Fund-block placement and lookup
	payment       // Batch and instruction intake plus settlement persistence
	accountingLog // The append-only double-entry trail
	statement     // Account statement rows
}

// account defines methods for handling accounts.
type account interface {
	CreateAccount(ctx context.Context, account model.Account) (model.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (*model.Account, error)
	GetAccountByPhone(ctx context.Context, phone string) (*model.Account, error)
	GetAllAccounts(ctx context.Context) ([]model.Account, error)
}

// fundBlock defines methods for handling fund blocks.
type fundBlock interface {
	CreateFundBlock(ctx context.Context, account *model.Account, block *model.FundBlock) error // Persists the block and the raised hold in one transaction
	GetFundBlockByReference(ctx context.Context, reference string) (*model.FundBlock, error)
}

// payment defines methods for handling payment batches and instructions.
type payment interface {
	CreatePaymentBatch(ctx context.Context, batch *model.PaymentBatch, instructions []*model.PaymentInstruction) error
	GetPaymentBatch(ctx context.Context, batchID string) (*model.PaymentBatch, error)
	GetPendingBatches(ctx context.Context, maxAttempts int) ([]model.PaymentBatch, error)
	GetInstructionsForBatch(ctx context.Context, batchID string) ([]*model.PaymentInstruction, error)
	CommitSettlementPass(ctx context.Context, pass *model.SettlementPass) error // Persists a whole batch pass in one transaction
	MarkBatchRetry(ctx context.Context, batchID string) error                   // Returns a failed batch to PENDING with one more attempt on record
}

// accountingLog defines methods for reading the accounting trail.
type accountingLog interface {
	GetAccountingLogs(ctx context.Context, accountNumber string) ([]model.AccountingLog, error)
}

// statement defines methods for handling account statements.
type statement interface {
	RequestAccountStatement(ctx context.Context, accountNumber string, statementDate time.Time) (*model.AccountStatement, error)
	GetAccountStatement(ctx context.Context, id int64) (*model.AccountStatement, error)
	SaveAccountStatementLob(ctx context.Context, id int64, lob string) error
}
