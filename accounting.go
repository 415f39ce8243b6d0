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
	"math/rand"
	"sync"
	"time"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// FailureSelector decides which settled instructions are hit by a simulated
// beneficiary-bank failure and which reason they fail with. Injectable so
// tests can force deterministic outcomes.
type FailureSelector interface {
	SelectForFailure() bool
	FailureReason() string
}

type randomFailureSelector struct {
	rate int
	mu   sync.Mutex
	rng  *rand.Rand
}

// NewRandomFailureSelector returns a selector that fails roughly rate
// percent of instructions with a reason drawn uniformly from the known
// failure reasons.
func NewRandomFailureSelector(rate int) FailureSelector {
	return &randomFailureSelector{
		rate: rate,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *randomFailureSelector) SelectForFailure() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(100) < s.rate
}

func (s *randomFailureSelector) FailureReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.FailureReasons[s.rng.Intn(len(model.FailureReasons))]
}

// buildDebitEntry creates the accounting entry for a settled instruction.
// The entry carries the instruction's narratives verbatim; downstream
// statement consumers reconcile on them.
func buildDebitEntry(instruction *model.PaymentInstruction) *model.AccountingLog {
	return &model.AccountingLog{
		ReferenceNo:                   model.GenerateUUIDWithSuffix("log"),
		CorrespondingBlockReferenceNo: instruction.FundsBlockedReferenceNumber,
		CustomerReferenceNo:           instruction.PaymentReferenceNumber,
		DebitCredit:                   model.Debit,
		AccountNumber:                 instruction.RemittingAccount,
		TransactionAmount:             instruction.PaymentAmount,
		TransactionDate:               time.Now(),
		TransactionCurrency:           instruction.RemittingAccountCurrency,
		TransactionCode:               model.TransactionCodeDebit,
		Narrative1:                    instruction.Narrative1,
		Narrative2:                    instruction.Narrative2,
		Narrative3:                    instruction.Narrative3,
		Narrative4:                    instruction.Narrative4,
		Narrative5:                    instruction.Narrative5,
		Narrative6:                    instruction.Narrative6,
		Active:                        true,
	}
}

// buildReversalEntry creates the compensating entry for a failed payment:
// the negated amount under the original classification and transaction
// date, a fresh reference, and the failure reason in the last narrative
// slot. The original entry is left untouched.
func buildReversalEntry(original *model.AccountingLog, reason string) *model.AccountingLog {
	return &model.AccountingLog{
		ReferenceNo:                   model.GenerateUUIDWithSuffix("log"),
		CorrespondingBlockReferenceNo: original.CorrespondingBlockReferenceNo,
		CustomerReferenceNo:           original.CustomerReferenceNo,
		DebitCredit:                   original.DebitCredit,
		AccountNumber:                 original.AccountNumber,
		TransactionAmount:             original.TransactionAmount.Neg(),
		TransactionDate:               original.TransactionDate,
		TransactionCurrency:           original.TransactionCurrency,
		TransactionCode:               original.TransactionCode,
		Narrative1:                    original.Narrative1,
		Narrative2:                    original.Narrative2,
		Narrative3:                    original.Narrative3,
		Narrative4:                    original.Narrative4,
		Narrative5:                    original.Narrative5,
		Narrative6:                    reason,
		Active:                        true,
	}
}
