package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testAccount(book, blocked int64) *Account {
	account := &Account{
		AccountNumber:   "ACC-1",
		AccountCurrency: "USD",
		BookBalance:     decimal.NewFromInt(book),
		BlockedAmount:   decimal.NewFromInt(blocked),
	}
	account.AvailableBalance = account.BookBalance.Sub(account.BlockedAmount)
	return account
}

func TestApplyDebit(t *testing.T) {
	account := testAccount(1000, 300)

	account.ApplyDebit(decimal.NewFromInt(200))

	assert.True(t, account.BookBalance.Equal(decimal.NewFromInt(800)))
	assert.True(t, account.BlockedAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, account.AvailableBalance.Equal(decimal.NewFromInt(700)))
}

func TestApplyDebitNegativeAmountRestoresBalances(t *testing.T) {
	account := testAccount(1000, 300)

	account.ApplyDebit(decimal.NewFromInt(200))
	account.ApplyDebit(decimal.NewFromInt(-200))

	assert.True(t, account.BookBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, account.BlockedAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, account.AvailableBalance.Equal(decimal.NewFromInt(700)))
}

func TestAvailableBalanceInvariant(t *testing.T) {
	account := testAccount(5000, 0)

	account.ApplyBlock(decimal.NewFromInt(1200))
	assert.True(t, account.AvailableBalance.Equal(decimal.NewFromInt(3800)))

	account.ApplyDebit(decimal.NewFromInt(700))
	assert.True(t, account.AvailableBalance.Equal(account.BookBalance.Sub(account.BlockedAmount)))

	account.ApplyDebit(decimal.NewFromInt(-700))
	assert.True(t, account.AvailableBalance.Equal(account.BookBalance.Sub(account.BlockedAmount)))
}

func TestCanBlock(t *testing.T) {
	account := testAccount(1000, 900)

	assert.True(t, account.CanBlock(decimal.NewFromInt(100)))
	assert.False(t, account.CanBlock(decimal.NewFromInt(101)))
}

func TestApplyRelease(t *testing.T) {
	block := &FundBlock{
		BlockReferenceNo: "BLK-1",
		BlockedAmount:    decimal.NewFromInt(500),
		AmountReleased:   decimal.Zero,
	}

	assert.NoError(t, block.ApplyRelease(decimal.NewFromInt(300)))
	assert.True(t, block.AmountReleased.Equal(decimal.NewFromInt(300)))

	assert.NoError(t, block.ApplyRelease(decimal.NewFromInt(200)))
	assert.True(t, block.AmountReleased.Equal(decimal.NewFromInt(500)))
}

func TestApplyReleaseOverBlockedAmount(t *testing.T) {
	block := &FundBlock{
		BlockReferenceNo: "BLK-1",
		BlockedAmount:    decimal.NewFromInt(500),
		AmountReleased:   decimal.NewFromInt(400),
	}

	err := block.ApplyRelease(decimal.NewFromInt(101))
	assert.Error(t, err)
	assert.True(t, block.AmountReleased.Equal(decimal.NewFromInt(400)))
}

func TestApplyReleaseNegativeAmountCompensates(t *testing.T) {
	block := &FundBlock{
		BlockReferenceNo: "BLK-1",
		BlockedAmount:    decimal.NewFromInt(500),
		AmountReleased:   decimal.NewFromInt(500),
	}

	assert.NoError(t, block.ApplyRelease(decimal.NewFromInt(-500)))
	assert.True(t, block.AmountReleased.Equal(decimal.Zero))
}

func TestBatchDispatchable(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		attempts int
		want     bool
	}{
		{"pending under budget", BatchStatusPending, 0, true},
		{"pending at last attempt", BatchStatusPending, 2, true},
		{"pending exhausted", BatchStatusPending, 3, false},
		{"processed", BatchStatusProcessed, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := &PaymentBatch{PaymentStatus: tt.status, PaymentInitiateAttempts: tt.attempts}
			assert.Equal(t, tt.want, batch.Dispatchable(3))
		})
	}
}

func TestInstructionEligible(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		attempts int
		want     bool
	}{
		{"pending", InstructionStatusPending, 0, true},
		{"failed retries", InstructionStatusFailed, 1, true},
		{"succeeded", InstructionStatusSuccess, 1, false},
		{"attempts exhausted", InstructionStatusPending, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instruction := &PaymentInstruction{Status: tt.status, Attempts: tt.attempts}
			assert.Equal(t, tt.want, instruction.Eligible(3))
		})
	}
}

func TestIsReversal(t *testing.T) {
	entry := &AccountingLog{TransactionAmount: decimal.NewFromInt(100)}
	assert.False(t, entry.IsReversal())

	reversal := &AccountingLog{TransactionAmount: decimal.NewFromInt(-100)}
	assert.True(t, reversal.IsReversal())
}

func TestGenerateUUIDWithSuffix(t *testing.T) {
	id := GenerateUUIDWithSuffix("acc")
	assert.Contains(t, id, "acc_")
	assert.NotEqual(t, id, GenerateUUIDWithSuffix("acc"))
}
