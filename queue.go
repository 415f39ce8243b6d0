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
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
	redis_db "github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/redis-db"
)

// Queue wraps the asynq client used to hand settlement and statement work
// to the background workers. Queue names are fixed at construction.
type Queue struct {
	Client         *asynq.Client
	Inspector      *asynq.Inspector
	paymentQueue   string
	statementQueue string
}

// NewQueue initializes a Queue from the configured redis DSN.
func NewQueue(conf *config.Configuration) *Queue {
	redisOption, err := redis_db.ParseRedisURL(conf.Redis.Dns)
	if err != nil {
		log.Fatalf("Error parsing Redis URL: %v", err)
	}

	queueOptions := asynq.RedisClientOpt{Addr: redisOption.Addr, Password: redisOption.Password, DB: redisOption.DB}
	client := asynq.NewClient(queueOptions)
	inspector := asynq.NewInspector(queueOptions)
	return &Queue{
		Client:         client,
		Inspector:      inspector,
		paymentQueue:   conf.Queue.PaymentQueue,
		statementQueue: conf.Queue.StatementQueue,
	}
}

// EnqueueSettlement queues a payment batch for a settlement pass. The task
// ID is derived from the batch ID so a batch the beat re-scans while its
// previous task is still waiting is not enqueued twice.
func (q *Queue) EnqueueSettlement(batchID string) error {
	payload, err := json.Marshal(batchID)
	if err != nil {
		return err
	}
	taskOptions := []asynq.Option{
		asynq.TaskID(fmt.Sprintf("batch:%s", batchID)),
		asynq.Queue(q.paymentQueue),
	}
	task := asynq.NewTask(q.paymentQueue, payload, taskOptions...)
	info, err := q.Client.Enqueue(task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		log.Println(err, info)
		return err
	}
	log.Printf(" [*] Successfully enqueued batch: %+v", batchID)
	return nil
}

// EnqueueStatement queues generation of a requested account statement.
func (q *Queue) EnqueueStatement(statementID int64) error {
	payload, err := json.Marshal(statementID)
	if err != nil {
		return err
	}
	taskOptions := []asynq.Option{
		asynq.Queue(q.statementQueue),
	}
	task := asynq.NewTask(q.statementQueue, payload, taskOptions...)
	info, err := q.Client.Enqueue(task)
	if err != nil {
		log.Println(err, info)
		return err
	}
	log.Printf(" [*] Successfully enqueued statement: %d", statementID)
	return nil
}
