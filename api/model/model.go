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

// Package model holds the API request payloads and their validation rules.
package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

type CreateAccount struct {
	AccountHolderName  string          `json:"account_holder_name"`
	AccountHolderPhone string          `json:"account_holder_phone"`
	AccountCurrency    string          `json:"account_currency"`
	BookBalance        decimal.Decimal `json:"book_balance"`
}

type BlockFunds struct {
	AccountNumber string          `json:"account_number"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
}

type CheckFunds struct {
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
}

type PaymentInstruction struct {
	PaymentReferenceNumber      string          `json:"payment_reference_number"`
	RemittingAccount            string          `json:"remitting_account"`
	RemittingAccountCurrency    string          `json:"remitting_account_currency"`
	PaymentAmount               decimal.Decimal `json:"payment_amount"`
	FundsBlockedReferenceNumber string          `json:"funds_blocked_reference_number"`
	Narrative1                  string          `json:"narrative_1"`
	Narrative2                  string          `json:"narrative_2"`
	Narrative3                  string          `json:"narrative_3"`
	Narrative4                  string          `json:"narrative_4"`
	Narrative5                  string          `json:"narrative_5"`
	Narrative6                  string          `json:"narrative_6"`
}

type InitiatePayments struct {
	PaymentInstructions []PaymentInstruction `json:"payment_instructions"`
}

type RequestStatement struct {
	AccountNumber string `json:"account_number"`
}

func positiveAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("invalid amount")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

func nonNegativeAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("invalid amount")
	}
	if amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	return nil
}

func (a *CreateAccount) ValidateCreateAccount() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.AccountHolderName, validation.Required),
		validation.Field(&a.AccountCurrency, validation.Required),
		validation.Field(&a.BookBalance, validation.By(nonNegativeAmount)),
	)
}

func (a *CreateAccount) ToAccount() model.Account {
	return model.Account{
		AccountHolderName:  a.AccountHolderName,
		AccountHolderPhone: a.AccountHolderPhone,
		AccountCurrency:    a.AccountCurrency,
		BookBalance:        a.BookBalance,
	}
}

func (b *BlockFunds) ValidateBlockFunds() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.AccountNumber, validation.Required),
		validation.Field(&b.Currency, validation.Required),
		validation.Field(&b.Amount, validation.By(positiveAmount)),
	)
}

func (c *CheckFunds) ValidateCheckFunds() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AccountNumber, validation.Required),
		validation.Field(&c.Amount, validation.By(positiveAmount)),
	)
}

func (p *InitiatePayments) ValidateInitiatePayments() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.PaymentInstructions, validation.Required, validation.By(func(value interface{}) error {
			instructions, ok := value.([]PaymentInstruction)
			if !ok {
				return errors.New("invalid payment instructions")
			}
			for _, instruction := range instructions {
				if err := instruction.validate(); err != nil {
					return err
				}
			}
			return nil
		})),
	)
}

func (p *PaymentInstruction) validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.RemittingAccount, validation.Required),
		validation.Field(&p.RemittingAccountCurrency, validation.Required),
		validation.Field(&p.FundsBlockedReferenceNumber, validation.Required),
		validation.Field(&p.PaymentAmount, validation.By(positiveAmount)),
	)
}

func (p *InitiatePayments) ToInstructions() []*model.PaymentInstruction {
	instructions := make([]*model.PaymentInstruction, 0, len(p.PaymentInstructions))
	for _, instruction := range p.PaymentInstructions {
		instructions = append(instructions, &model.PaymentInstruction{
			PaymentReferenceNumber:      instruction.PaymentReferenceNumber,
			RemittingAccount:            instruction.RemittingAccount,
			RemittingAccountCurrency:    instruction.RemittingAccountCurrency,
			PaymentAmount:               instruction.PaymentAmount,
			FundsBlockedReferenceNumber: instruction.FundsBlockedReferenceNumber,
			Narrative1:                  instruction.Narrative1,
			Narrative2:                  instruction.Narrative2,
			Narrative3:                  instruction.Narrative3,
			Narrative4:                  instruction.Narrative4,
			Narrative5:                  instruction.Narrative5,
			Narrative6:                  instruction.Narrative6,
		})
	}
	return instructions
}

func (r *RequestStatement) ValidateRequestStatement() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AccountNumber, validation.Required),
	)
}
