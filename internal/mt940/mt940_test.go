package mt940

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1234,50", formatAmount(decimal.NewFromFloat(1234.5), 0))
	assert.Equal(t, "000000001234,50", formatAmount(decimal.NewFromFloat(1234.5), 15))
	assert.Equal(t, "000000000000,00", formatAmount(decimal.Zero, 15))
}

func TestAccountString(t *testing.T) {
	account := Account{Number: "ACC-1", Identifier: "000001"}
	assert.Equal(t, "ACC-1/000001", account.String())
}

func TestBalanceString(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	credit := Balance{Amount: decimal.NewFromInt(100000000), Date: date, Currency: "USD"}
	assert.Equal(t, "C240315USD100000000,00", credit.String())

	debit := Balance{Amount: decimal.NewFromInt(-500), Date: date, Currency: "USD"}
	assert.Equal(t, "D240315USD500,00", debit.String())
}

func TestTransactionString(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	txn := NewTransaction(date, date, "D", decimal.NewFromFloat(250.75), TypeTransfer, "CUST-REF", "BANK-REF", "", "", "")

	line := txn.String()
	assert.True(t, strings.HasPrefix(line, "2403150315D000000000250,75NTRF"))
	assert.Contains(t, line, "CUST-REF")
	assert.Contains(t, line, "//BANK-REF")
}

func TestTransactionBankReferenceCapped(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	txn := NewTransaction(date, date, "D", decimal.NewFromInt(1), TypeTransfer, "", "log_0123456789abcdefghij", "", "", "")

	assert.Equal(t, "//log_0123456789ab", txn.BankReference)
}

func TestStatementString(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	statement := Statement{
		ReferenceNumber: "42",
		Account:         Account{Number: "ACC-1", Identifier: "000001"},
		StatementNumber: "1/1",
		OpeningBalance:  Balance{Amount: decimal.NewFromInt(100000000), Date: date, Currency: "USD"},
		ClosingBalance:  Balance{Amount: decimal.NewFromInt(99999000), Date: date, Currency: "USD"},
		Transactions: []Transaction{
			NewTransaction(date, date, "D", decimal.NewFromInt(1000), TypeTransfer, "CUST-1", "BANK-1", "", "", "beneficiary detail"),
		},
	}

	lines := strings.Split(statement.String(), "\n")
	assert.Equal(t, ":20:42", lines[0])
	assert.Equal(t, ":25:ACC-1/000001", lines[1])
	assert.Equal(t, ":28C:1/1", lines[2])
	assert.Equal(t, ":60F:C240315USD100000000,00", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], ":61:2403150315D000000001000,00NTRF"))
	assert.Equal(t, ":86:beneficiary detail", lines[5])
	assert.Equal(t, ":62F:C240315USD99999000,00", lines[6])
}

func TestStatementOmitsEmptyDetailBlock(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	statement := Statement{
		ReferenceNumber: "1",
		Account:         Account{Number: "ACC-1", Identifier: "000001"},
		StatementNumber: "1/1",
		OpeningBalance:  Balance{Amount: decimal.NewFromInt(100), Date: date, Currency: "USD"},
		ClosingBalance:  Balance{Amount: decimal.NewFromInt(100), Date: date, Currency: "USD"},
		Transactions: []Transaction{
			NewTransaction(date, date, "C", decimal.NewFromInt(10), TypeTransfer, "", "", "", "", ""),
		},
	}

	assert.NotContains(t, statement.String(), ":86:")
}
