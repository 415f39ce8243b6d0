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

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/notification"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

var tracer = otel.Tracer("bank")

// ProcessBatch runs one settlement pass over a payment batch. Every
// eligible instruction is settled against its fund block, some are then hit
// by a simulated beneficiary-bank failure and compensated with a reversal
// entry, and the whole pass commits as a single database transaction.
//
// A failed pass never reaches the queue as a task error: the batch is
// returned to PENDING with the spent attempt recorded and the beat picks it
// up again. Only batches that exhaust their attempt budget raise an alert.
func (b *Bank) ProcessBatch(ctx context.Context, batchID string) error {
	ctx, span := tracer.Start(ctx, "Processing payment batch")
	defer span.End()

	maxAttempts := b.cnf.Settlement.PaymentInitiateAttempts

	batch, err := b.datasource.GetPaymentBatch(ctx, batchID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !batch.Dispatchable(maxAttempts) {
		logrus.Infof("batch %s is not dispatchable (status %s, attempts %d), skipping", batchID, batch.PaymentStatus, batch.PaymentInitiateAttempts)
		return nil
	}

	instructions, err := b.datasource.GetInstructionsForBatch(ctx, batchID)
	if err != nil {
		return b.retryBatch(ctx, batch, maxAttempts, err)
	}

	pass := model.NewSettlementPass(batch)
	if err := b.buildSettlementPass(ctx, pass, instructions, maxAttempts); err != nil {
		return b.retryBatch(ctx, batch, maxAttempts, err)
	}

	batch.PaymentStatus = model.BatchStatusProcessed
	batch.PaymentInitiateAttempts++

	if err := b.datasource.CommitSettlementPass(ctx, pass); err != nil {
		batch.PaymentStatus = model.BatchStatusPending
		batch.PaymentInitiateAttempts--
		return b.retryBatch(ctx, batch, maxAttempts, err)
	}

	logrus.Infof("payments processed for batch %s (%d instructions, %d entries)", batchID, len(pass.Instructions), len(pass.Logs))
	return nil
}

// buildSettlementPass settles every eligible instruction in memory. All
// instructions of a batch share the pass's Account and FundBlock instances,
// so two instructions drawing on the same account see each other's debits.
func (b *Bank) buildSettlementPass(ctx context.Context, pass *model.SettlementPass, instructions []*model.PaymentInstruction, maxAttempts int) error {
	for _, instruction := range instructions {
		if !instruction.Eligible(maxAttempts) {
			continue
		}

		account, err := b.passAccount(ctx, pass, instruction.RemittingAccount)
		if err != nil {
			return errors.Wrapf(err, "loading account for instruction %s", instruction.PaymentReferenceNumber)
		}
		block, err := b.passFundBlock(ctx, pass, instruction.FundsBlockedReferenceNumber)
		if err != nil {
			return errors.Wrapf(err, "loading fund block for instruction %s", instruction.PaymentReferenceNumber)
		}

		entry := buildDebitEntry(instruction)
		if err := settle(account, block, instruction.PaymentAmount); err != nil {
			return errors.Wrapf(err, "settling instruction %s", instruction.PaymentReferenceNumber)
		}
		instruction.Status = model.InstructionStatusSuccess
		instruction.Attempts++
		pass.Instructions = append(pass.Instructions, instruction)
		pass.Logs = append(pass.Logs, entry)

		if b.failures.SelectForFailure() {
			reversal := buildReversalEntry(entry, b.failures.FailureReason())
			if err := settle(account, block, reversal.TransactionAmount); err != nil {
				return errors.Wrapf(err, "reversing instruction %s", instruction.PaymentReferenceNumber)
			}
			pass.Logs = append(pass.Logs, reversal)
		}
	}
	return nil
}

// settle applies one debit-and-release unit against the in-memory account
// and fund block. A negative amount nets a previous unit back out. The pair
// stays atomic: if the release is rejected the debit is undone and the
// failure surfaces as an integrity violation, not a retryable fault.
func settle(account *model.Account, block *model.FundBlock, amount decimal.Decimal) error {
	account.ApplyDebit(amount)
	if err := block.ApplyRelease(amount); err != nil {
		account.ApplyDebit(amount.Neg())
		return apierror.NewAPIError(apierror.ErrIntegrity, err.Error(), err)
	}
	return nil
}

func (b *Bank) passAccount(ctx context.Context, pass *model.SettlementPass, accountNumber string) (*model.Account, error) {
	if account, ok := pass.Accounts[accountNumber]; ok {
		return account, nil
	}
	account, err := b.datasource.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	pass.Accounts[accountNumber] = account
	return account, nil
}

func (b *Bank) passFundBlock(ctx context.Context, pass *model.SettlementPass, reference string) (*model.FundBlock, error) {
	if block, ok := pass.FundBlocks[reference]; ok {
		return block, nil
	}
	block, err := b.datasource.GetFundBlockByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	pass.FundBlocks[reference] = block
	return block, nil
}

// retryBatch records the failed attempt and swallows the cause so the queue
// never sees a pass failure as a task crash. Exhausted batches are reported
// for manual intervention.
func (b *Bank) retryBatch(ctx context.Context, batch *model.PaymentBatch, maxAttempts int, cause error) error {
	logrus.Errorf("settlement pass failed for batch %s: %v", batch.BatchID, cause)

	if err := b.datasource.MarkBatchRetry(ctx, batch.BatchID); err != nil {
		logrus.Errorf("failed to record retry for batch %s: %v", batch.BatchID, err)
		return nil
	}

	if batch.PaymentInitiateAttempts+1 >= maxAttempts {
		notification.NotifyStrandedBatch(batch.BatchID, batch.PaymentInitiateAttempts+1)
	}
	return nil
}
