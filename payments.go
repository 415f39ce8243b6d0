package bank

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// InitiatePaymentBatch accepts a set of pre-authorized payment instructions
// as one batch. The batch is persisted PENDING and picked up by the beat;
// intake never settles anything inline.
func (b *Bank) InitiatePaymentBatch(ctx context.Context, instructions []*model.PaymentInstruction) (*model.PaymentBatch, error) {
	ctx, span := tracer.Start(ctx, "Initiating payment batch")
	defer span.End()

	if len(instructions) == 0 {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Payment batch must contain at least one instruction", nil)
	}

	batch := &model.PaymentBatch{
		BatchID:       model.GenerateUUIDWithSuffix("bat"),
		PaymentStatus: model.BatchStatusPending,
	}

	for i, instruction := range instructions {
		if instruction.FundsBlockedReferenceNumber == "" {
			return nil, apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("Instruction %d has no fund block reference", i), nil)
		}
		instruction.BatchID = batch.BatchID
		instruction.Status = model.InstructionStatusPending
		instruction.Attempts = 0
		if instruction.PaymentReferenceNumber == "" {
			instruction.PaymentReferenceNumber = model.GenerateUUIDWithSuffix("pay")
		}
	}

	if err := b.datasource.CreatePaymentBatch(ctx, batch, instructions); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logrus.Infof("payment batch %s accepted with %d instructions", batch.BatchID, len(instructions))
	return batch, nil
}

// DispatchPendingBatches scans for batches still eligible under the attempt
// budget and queues a settlement pass for each. Called by the beat on every
// tick; duplicate dispatch of a waiting batch is absorbed by the task ID.
func (b *Bank) DispatchPendingBatches(ctx context.Context) (int, error) {
	batches, err := b.datasource.GetPendingBatches(ctx, b.cnf.Settlement.PaymentInitiateAttempts)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, batch := range batches {
		if err := b.queue.EnqueueSettlement(batch.BatchID); err != nil {
			logrus.Errorf("failed to enqueue batch %s: %v", batch.BatchID, err)
			continue
		}
		dispatched++
	}
	return dispatched, nil
}
