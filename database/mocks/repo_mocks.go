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
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

// Account methods

func (m *MockDataSource) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockDataSource) GetAccountByNumber(ctx context.Context, number string) (*model.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockDataSource) GetAccountByPhone(ctx context.Context, phone string) (*model.Account, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockDataSource) GetAllAccounts(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Account), args.Error(1)
}

// Fund block methods

func (m *MockDataSource) CreateFundBlock(ctx context.Context, account *model.Account, block *model.FundBlock) error {
	args := m.Called(ctx, account, block)
	return args.Error(0)
}

func (m *MockDataSource) GetFundBlockByReference(ctx context.Context, reference string) (*model.FundBlock, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FundBlock), args.Error(1)
}

// Payment methods

func (m *MockDataSource) CreatePaymentBatch(ctx context.Context, batch *model.PaymentBatch, instructions []*model.PaymentInstruction) error {
	args := m.Called(ctx, batch, instructions)
	return args.Error(0)
}

func (m *MockDataSource) GetPaymentBatch(ctx context.Context, batchID string) (*model.PaymentBatch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentBatch), args.Error(1)
}

func (m *MockDataSource) GetPendingBatches(ctx context.Context, maxAttempts int) ([]model.PaymentBatch, error) {
	args := m.Called(ctx, maxAttempts)
	return args.Get(0).([]model.PaymentBatch), args.Error(1)
}

func (m *MockDataSource) GetInstructionsForBatch(ctx context.Context, batchID string) ([]*model.PaymentInstruction, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).([]*model.PaymentInstruction), args.Error(1)
}

func (m *MockDataSource) CommitSettlementPass(ctx context.Context, pass *model.SettlementPass) error {
	args := m.Called(ctx, pass)
	return args.Error(0)
}

func (m *MockDataSource) MarkBatchRetry(ctx context.Context, batchID string) error {
	args := m.Called(ctx, batchID)
	return args.Error(0)
}

// Accounting log methods

func (m *MockDataSource) GetAccountingLogs(ctx context.Context, accountNumber string) ([]model.AccountingLog, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).([]model.AccountingLog), args.Error(1)
}

// Statement methods

func (m *MockDataSource) RequestAccountStatement(ctx context.Context, accountNumber string, statementDate time.Time) (*model.AccountStatement, error) {
	args := m.Called(ctx, accountNumber, statementDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccountStatement), args.Error(1)
}

func (m *MockDataSource) GetAccountStatement(ctx context.Context, id int64) (*model.AccountStatement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccountStatement), args.Error(1)
}

func (m *MockDataSource) SaveAccountStatementLob(ctx context.Context, id int64, lob string) error {
	args := m.Called(ctx, id, lob)
	return args.Error(0)
}
