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
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/database/mocks"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// fixedSelector replaces the random failure selector so tests control which
// instructions fail.
type fixedSelector struct {
	fail   bool
	reason string
}

func (s fixedSelector) SelectForFailure() bool { return s.fail }
func (s fixedSelector) FailureReason() string  { return s.reason }

func newTestBank(selector FailureSelector) (*Bank, *mocks.MockDataSource) {
	cnf := &config.Configuration{
		Settlement: config.SettlementConfig{
			PaymentInitiateAttempts: 3,
			FailureRate:             30,
			ProcessPaymentFrequency: 10,
			StatementOpeningBalance: "100000000",
		},
	}
	ds := new(mocks.MockDataSource)
	return &Bank{cnf: cnf, datasource: ds, failures: selector}, ds
}

func settlementAccount(number string, book, blocked int64) *model.Account {
	account := &model.Account{
		AccountNumber:   number,
		AccountCurrency: "USD",
		BookBalance:     decimal.NewFromInt(book),
		BlockedAmount:   decimal.NewFromInt(blocked),
	}
	account.AvailableBalance = account.BookBalance.Sub(account.BlockedAmount)
	return account
}

func settlementInstruction(batchID, account, blockRef string, amount int64) *model.PaymentInstruction {
	return &model.PaymentInstruction{
		BatchID:                     batchID,
		PaymentReferenceNumber:      model.GenerateUUIDWithSuffix("pay"),
		RemittingAccount:            account,
		RemittingAccountCurrency:    "USD",
		PaymentAmount:               decimal.NewFromInt(amount),
		FundsBlockedReferenceNumber: blockRef,
		Status:                      model.InstructionStatusPending,
	}
}

func TestProcessBatchSettlesInstructions(t *testing.T) {
	b, ds := newTestBank(fixedSelector{fail: false})

	batch := &model.PaymentBatch{BatchID: "bat_1", PaymentStatus: model.BatchStatusPending}
	account := settlementAccount("ACC-1", 10000, 3000)
	blockA := &model.FundBlock{BlockReferenceNo: "blk_a", AccountNumber: "ACC-1", BlockedAmount: decimal.NewFromInt(1000)}
	blockB := &model.FundBlock{BlockReferenceNo: "blk_b", AccountNumber: "ACC-1", BlockedAmount: decimal.NewFromInt(2000)}
	instructions := []*model.PaymentInstruction{
		settlementInstruction("bat_1", "ACC-1", "blk_a", 1000),
		settlementInstruction("bat_1", "ACC-1", "blk_b", 2000),
	}

	ds.On("GetPaymentBatch", mock.Anything, "bat_1").Return(batch, nil)
	ds.On("GetInstructionsForBatch", mock.Anything, "bat_1").Return(instructions, nil)
	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(account, nil)
	ds.On("GetFundBlockByReference", mock.Anything, "blk_a").Return(blockA, nil)
	ds.On("GetFundBlockByReference", mock.Anything, "blk_b").Return(blockB, nil)

	var pass *model.SettlementPass
	ds.On("CommitSettlementPass", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		pass = args.Get(1).(*model.SettlementPass)
	}).Return(nil)

	err := b.ProcessBatch(context.Background(), "bat_1")
	assert.NoError(t, err)

	// both instructions settled against the shared account instance
	assert.True(t, account.BookBalance.Equal(decimal.NewFromInt(7000)))
	assert.True(t, account.BlockedAmount.Equal(decimal.Zero))
	assert.True(t, account.AvailableBalance.Equal(decimal.NewFromInt(7000)))

	assert.True(t, blockA.AmountReleased.Equal(decimal.NewFromInt(1000)))
	assert.True(t, blockB.AmountReleased.Equal(decimal.NewFromInt(2000)))

	assert.Equal(t, model.BatchStatusProcessed, batch.PaymentStatus)
	assert.Equal(t, 1, batch.PaymentInitiateAttempts)

	assert.NotNil(t, pass)
	assert.Len(t, pass.Logs, 2)
	for _, entry := range pass.Logs {
		assert.False(t, entry.IsReversal())
		assert.Equal(t, model.Debit, entry.DebitCredit)
	}
	for _, instruction := range instructions {
		assert.Equal(t, model.InstructionStatusSuccess, instruction.Status)
		assert.Equal(t, 1, instruction.Attempts)
	}

	ds.AssertNotCalled(t, "MarkBatchRetry", mock.Anything, mock.Anything)
}

func TestProcessBatchSimulatedFailureNetsToZero(t *testing.T) {
	b, ds := newTestBank(fixedSelector{fail: true, reason: "ACCOUNT_CLOSED"})

	batch := &model.PaymentBatch{BatchID: "bat_1", PaymentStatus: model.BatchStatusPending}
	account := settlementAccount("ACC-1", 10000, 1000)
	block := &model.FundBlock{BlockReferenceNo: "blk_a", AccountNumber: "ACC-1", BlockedAmount: decimal.NewFromInt(1000)}
	instructions := []*model.PaymentInstruction{
		settlementInstruction("bat_1", "ACC-1", "blk_a", 1000),
	}

	ds.On("GetPaymentBatch", mock.Anything, "bat_1").Return(batch, nil)
	ds.On("GetInstructionsForBatch", mock.Anything, "bat_1").Return(instructions, nil)
	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(account, nil)
	ds.On("GetFundBlockByReference", mock.Anything, "blk_a").Return(block, nil)

	var pass *model.SettlementPass
	ds.On("CommitSettlementPass", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		pass = args.Get(1).(*model.SettlementPass)
	}).Return(nil)

	err := b.ProcessBatch(context.Background(), "bat_1")
	assert.NoError(t, err)

	// debit and reversal cancel out on the account and the block
	assert.True(t, account.BookBalance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, account.BlockedAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, block.AmountReleased.Equal(decimal.Zero))

	assert.NotNil(t, pass)
	assert.Len(t, pass.Logs, 2)

	debit, reversal := pass.Logs[0], pass.Logs[1]
	assert.False(t, debit.IsReversal())
	assert.True(t, reversal.IsReversal())
	assert.True(t, reversal.TransactionAmount.Equal(debit.TransactionAmount.Neg()))
	assert.Equal(t, debit.DebitCredit, reversal.DebitCredit)
	assert.Equal(t, "ACCOUNT_CLOSED", reversal.Narrative6)
	assert.NotEqual(t, debit.ReferenceNo, reversal.ReferenceNo)
	assert.Equal(t, debit.CustomerReferenceNo, reversal.CustomerReferenceNo)

	// the instruction itself still settled
	assert.Equal(t, model.InstructionStatusSuccess, instructions[0].Status)
	assert.Equal(t, model.BatchStatusProcessed, batch.PaymentStatus)
}

func TestProcessBatchCommitFailureMarksRetry(t *testing.T) {
	b, ds := newTestBank(fixedSelector{fail: false})

	batch := &model.PaymentBatch{BatchID: "bat_1", PaymentStatus: model.BatchStatusPending}
	account := settlementAccount("ACC-1", 10000, 1000)
	block := &model.FundBlock{BlockReferenceNo: "blk_a", AccountNumber: "ACC-1", BlockedAmount: decimal.NewFromInt(1000)}
	instructions := []*model.PaymentInstruction{
		settlementInstruction("bat_1", "ACC-1", "blk_a", 1000),
	}

	ds.On("GetPaymentBatch", mock.Anything, "bat_1").Return(batch, nil)
	ds.On("GetInstructionsForBatch", mock.Anything, "bat_1").Return(instructions, nil)
	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(account, nil)
	ds.On("GetFundBlockByReference", mock.Anything, "blk_a").Return(block, nil)
	ds.On("CommitSettlementPass", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	ds.On("MarkBatchRetry", mock.Anything, "bat_1").Return(nil)

	// pass failure is swallowed so the queue never retries the task itself
	err := b.ProcessBatch(context.Background(), "bat_1")
	assert.NoError(t, err)

	assert.Equal(t, model.BatchStatusPending, batch.PaymentStatus)
	assert.Equal(t, 0, batch.PaymentInitiateAttempts)
	ds.AssertCalled(t, "MarkBatchRetry", mock.Anything, "bat_1")
}

func TestProcessBatchReleaseOverBlockMarksRetry(t *testing.T) {
	b, ds := newTestBank(fixedSelector{fail: false})

	batch := &model.PaymentBatch{BatchID: "bat_1", PaymentStatus: model.BatchStatusPending}
	account := settlementAccount("ACC-1", 10000, 1000)
	// block smaller than the instruction amount
	block := &model.FundBlock{BlockReferenceNo: "blk_a", AccountNumber: "ACC-1", BlockedAmount: decimal.NewFromInt(500)}
	instructions := []*model.PaymentInstruction{
		settlementInstruction("bat_1", "ACC-1", "blk_a", 1000),
	}

	ds.On("GetPaymentBatch", mock.Anything, "bat_1").Return(batch, nil)
	ds.On("GetInstructionsForBatch", mock.Anything, "bat_1").Return(instructions, nil)
	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(account, nil)
	ds.On("GetFundBlockByReference", mock.Anything, "blk_a").Return(block, nil)
	ds.On("MarkBatchRetry", mock.Anything, "bat_1").Return(nil)

	err := b.ProcessBatch(context.Background(), "bat_1")
	assert.NoError(t, err)

	// the aborted debit was rolled back in memory
	assert.True(t, account.BookBalance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, block.AmountReleased.Equal(decimal.Zero))

	ds.AssertNotCalled(t, "CommitSettlementPass", mock.Anything, mock.Anything)
	ds.AssertCalled(t, "MarkBatchRetry", mock.Anything, "bat_1")
}

func TestSettleOverReleaseIsIntegrityViolation(t *testing.T) {
	account := settlementAccount("ACC-1", 10000, 1000)
	block := &model.FundBlock{BlockReferenceNo: "blk_a", AccountNumber: "ACC-1", BlockedAmount: decimal.NewFromInt(500)}

	err := settle(account, block, decimal.NewFromInt(1000))
	assert.Error(t, err)

	var apiErr apierror.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.ErrIntegrity, apiErr.Code)

	// the paired debit was undone
	assert.True(t, account.BookBalance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, block.AmountReleased.Equal(decimal.Zero))
}

func TestProcessBatchUsesConfigurationFromConstruction(t *testing.T) {
	// a generous budget in the process-wide store must not leak into a
	// bank constructed with a stricter one
	config.MockConfig(&config.Configuration{
		Settlement: config.SettlementConfig{PaymentInitiateAttempts: 10},
	})

	ds := new(mocks.MockDataSource)
	b := &Bank{
		cnf:        &config.Configuration{Settlement: config.SettlementConfig{PaymentInitiateAttempts: 1}},
		datasource: ds,
		failures:   fixedSelector{fail: false},
	}

	batch := &model.PaymentBatch{BatchID: "bat_1", PaymentStatus: model.BatchStatusPending, PaymentInitiateAttempts: 1}
	ds.On("GetPaymentBatch", mock.Anything, "bat_1").Return(batch, nil)

	err := b.ProcessBatch(context.Background(), "bat_1")
	assert.NoError(t, err)

	ds.AssertNotCalled(t, "GetInstructionsForBatch", mock.Anything, mock.Anything)
	ds.AssertNotCalled(t, "CommitSettlementPass", mock.Anything, mock.Anything)
}

func TestProcessBatchSkipsNonDispatchable(t *testing.T) {
	b, ds := newTestBank(fixedSelector{fail: false})

	batch := &model.PaymentBatch{BatchID: "bat_1", PaymentStatus: model.BatchStatusProcessed, PaymentInitiateAttempts: 1}
	ds.On("GetPaymentBatch", mock.Anything, "bat_1").Return(batch, nil)

	err := b.ProcessBatch(context.Background(), "bat_1")
	assert.NoError(t, err)

	ds.AssertNotCalled(t, "GetInstructionsForBatch", mock.Anything, mock.Anything)
	ds.AssertNotCalled(t, "CommitSettlementPass", mock.Anything, mock.Anything)
}

func TestProcessBatchSkipsIneligibleInstructions(t *testing.T) {
	b, ds := newTestBank(fixedSelector{fail: false})

	batch := &model.PaymentBatch{BatchID: "bat_1", PaymentStatus: model.BatchStatusPending}
	account := settlementAccount("ACC-1", 10000, 1000)
	block := &model.FundBlock{BlockReferenceNo: "blk_a", AccountNumber: "ACC-1", BlockedAmount: decimal.NewFromInt(1000)}

	settled := settlementInstruction("bat_1", "ACC-1", "blk_a", 400)
	settled.Status = model.InstructionStatusSuccess
	settled.Attempts = 1
	pending := settlementInstruction("bat_1", "ACC-1", "blk_a", 600)

	ds.On("GetPaymentBatch", mock.Anything, "bat_1").Return(batch, nil)
	ds.On("GetInstructionsForBatch", mock.Anything, "bat_1").Return([]*model.PaymentInstruction{settled, pending}, nil)
	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(account, nil)
	ds.On("GetFundBlockByReference", mock.Anything, "blk_a").Return(block, nil)

	var pass *model.SettlementPass
	ds.On("CommitSettlementPass", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		pass = args.Get(1).(*model.SettlementPass)
	}).Return(nil)

	err := b.ProcessBatch(context.Background(), "bat_1")
	assert.NoError(t, err)

	// only the pending instruction was settled again
	assert.NotNil(t, pass)
	assert.Len(t, pass.Instructions, 1)
	assert.Len(t, pass.Logs, 1)
	assert.True(t, account.BookBalance.Equal(decimal.NewFromInt(9400)))
	assert.Equal(t, 1, settled.Attempts)
}

func TestDispatchPendingBatches(t *testing.T) {
	b, ds := newTestBank(fixedSelector{fail: false})

	ds.On("GetPendingBatches", mock.Anything, 3).Return([]model.PaymentBatch{}, nil)

	dispatched, err := b.DispatchPendingBatches(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, dispatched)
}
