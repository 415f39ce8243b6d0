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

// Package mt940 serializes account statements into the MT940 wire format
// consumed by downstream statement processors. Field widths and separators
// are a compatibility contract; do not adjust them for readability.
package mt940

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the SWIFT transaction type code on a :61: line.
type TransactionType string

const TypeTransfer TransactionType = "NTRF"

// Account identifies the statement's account on the :25: line.
type Account struct {
	Number     string
	Identifier string
}

func (a Account) String() string {
	return fmt.Sprintf("%s/%s", a.Number, a.Identifier)
}

// Balance is an opening (:60F:) or closing (:62F:) balance line.
type Balance struct {
	Amount   decimal.Decimal
	Date     time.Time
	Currency string
}

func (b Balance) String() string {
	mark := "C"
	if b.Amount.IsNegative() {
		mark = "D"
	}
	return fmt.Sprintf("%s%s%s%s", mark, b.Date.Format("060102"), b.Currency, formatAmount(b.Amount.Abs(), 0))
}

// Transaction is one :61: statement line plus its optional :86: detail
// block.
type Transaction struct {
	ValueDate            time.Time
	EntryDate            time.Time
	DebitCredit          string
	FundsCode            string
	Amount               decimal.Decimal
	Type                 TransactionType
	CustomerReference    string
	BankReference        string
	SupplementaryDetails string
	AdditionalInfo       string
}

// NewTransaction builds a :61: line. The bank reference is capped to 16
// source characters and prefixed with "//" on the wire.
func NewTransaction(valueDate, entryDate time.Time, debitCredit string, amount decimal.Decimal, txnType TransactionType, customerReference, bankReference, fundsCode, supplementaryDetails, additionalInfo string) Transaction {
	if len(bankReference) > 16 {
		bankReference = bankReference[:16]
	}
	return Transaction{
		ValueDate:            valueDate,
		EntryDate:            entryDate,
		DebitCredit:          debitCredit,
		FundsCode:            fundsCode,
		Amount:               amount,
		Type:                 txnType,
		CustomerReference:    customerReference,
		BankReference:        "//" + bankReference,
		SupplementaryDetails: supplementaryDetails,
		AdditionalInfo:       additionalInfo,
	}
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s%s%s%s%s%s%-17s%-17s%-34s",
		t.ValueDate.Format("060102"),
		t.EntryDate.Format("0102"),
		t.DebitCredit,
		t.FundsCode,
		formatAmount(t.Amount, 15),
		t.Type,
		t.CustomerReference,
		t.BankReference,
		t.SupplementaryDetails,
	)
}

// Statement is a full MT940 document: colon-tagged fields joined by
// newlines, one :61:/:86: pair per transaction.
type Statement struct {
	ReferenceNumber string
	Account         Account
	StatementNumber string
	OpeningBalance  Balance
	ClosingBalance  Balance
	Transactions    []Transaction
}

func (s Statement) String() string {
	result := []string{
		fmt.Sprintf(":20:%s", s.ReferenceNumber),
		fmt.Sprintf(":25:%s", s.Account),
		fmt.Sprintf(":28C:%s", s.StatementNumber),
		fmt.Sprintf(":60F:%s", s.OpeningBalance),
	}
	for _, txn := range s.Transactions {
		result = append(result, fmt.Sprintf(":61:%s", txn))
		if txn.AdditionalInfo != "" {
			result = append(result, fmt.Sprintf(":86:%s", txn.AdditionalInfo))
		}
	}
	result = append(result, fmt.Sprintf(":62F:%s", s.ClosingBalance))
	return strings.Join(result, "\n")
}

// formatAmount renders an amount with two decimals and a comma as the
// decimal separator, zero-padded on the left to width when width > 0.
func formatAmount(amount decimal.Decimal, width int) string {
	s := amount.StringFixed(2)
	if width > 0 && len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return strings.Replace(s, ".", ",", 1)
}
