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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
	redis_db "github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/redis-db"
)

// processPayments runs a settlement pass for the batch named in the task.
// Pass-level failures are absorbed inside ProcessBatch; an error here means
// the task itself was broken or the batch could not be loaded.
func (b *bankInstance) processPayments(ctx context.Context, t *asynq.Task) error {
	var batchID string
	if err := json.Unmarshal(t.Payload(), &batchID); err != nil {
		logrus.Error(err)
		return err
	}

	if err := b.bank.ProcessBatch(ctx, batchID); err != nil {
		logrus.Errorf("batch %s could not be processed: %v", batchID, err)
		return err
	}

	log.Println(" [*] Batch Processed", batchID)
	return nil
}

// generateStatement renders the MT940 document for a requested statement.
func (b *bankInstance) generateStatement(ctx context.Context, t *asynq.Task) error {
	var statementID int64
	if err := json.Unmarshal(t.Payload(), &statementID); err != nil {
		logrus.Error(err)
		return err
	}

	if err := b.bank.GenerateStatement(ctx, statementID); err != nil {
		logrus.Errorf("statement %d could not be generated: %v", statementID, err)
		return err
	}

	log.Println(" [*] Statement Generated", statementID)
	return nil
}

// startBeat scans for pending payment batches on a fixed cadence and queues
// a settlement pass for each. This is the only dispatcher of settlement
// work; batches returned to PENDING after a failed pass are picked up on a
// later tick.
func startBeat(ctx context.Context, b *bankInstance) {
	frequency := time.Duration(b.cnf.Settlement.ProcessPaymentFrequency) * time.Second
	ticker := time.NewTicker(frequency)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dispatched, err := b.bank.DispatchPendingBatches(ctx)
				if err != nil {
					logrus.Errorf("beat failed to dispatch pending batches: %v", err)
					continue
				}
				if dispatched > 0 {
					logrus.Infof("beat dispatched %d pending batches", dispatched)
				}
			}
		}
	}()
}

func initializeQueues() map[string]int {
	cfg, err := config.Fetch()
	if err != nil {
		log.Printf("Error fetching config, using defaults: %v", err)
		return nil
	}

	queues := make(map[string]int)
	queues[cfg.Queue.PaymentQueue] = 3
	queues[cfg.Queue.StatementQueue] = 1
	return queues
}

func initializeWorkerServer(conf *config.Configuration, queues map[string]int) (*asynq.Server, error) {
	redisOption, err := redis_db.ParseRedisURL(conf.Redis.Dns)
	if err != nil {
		return nil, fmt.Errorf("error parsing Redis URL: %v", err)
	}

	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisOption.Addr,
			Password: redisOption.Password,
			DB:       redisOption.DB,
		},
		asynq.Config{
			Concurrency: 1,
			Queues:      queues,
		},
	), nil
}

func initializeTaskHandlers(b *bankInstance, mux *asynq.ServeMux) {
	cfg, err := config.Fetch()
	if err != nil {
		log.Printf("Error fetching config, using defaults: %v", err)
		return
	}

	mux.HandleFunc(cfg.Queue.PaymentQueue, b.processPayments)
	mux.HandleFunc(cfg.Queue.StatementQueue, b.generateStatement)
}

// workerCommands defines the "workers" command: the asynq consumers, the
// beat that feeds them, and the monitoring UI.
func workerCommands(b *bankInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workers",
		Short: "start example bank workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			conf, err := config.Fetch()
			if err != nil {
				log.Fatal("Error fetching config:", err)
			}

			queues := initializeQueues()

			srv, err := initializeWorkerServer(conf, queues)
			if err != nil {
				log.Fatal(err)
			}

			mux := asynq.NewServeMux()
			initializeTaskHandlers(b, mux)

			startBeat(ctx, b)

			redisOption, _ := redis_db.ParseRedisURL(conf.Redis.Dns)
			h := asynqmon.New(asynqmon.Options{
				RootPath: "/monitoring",
				RedisConnOpt: asynq.RedisClientOpt{
					Addr:     redisOption.Addr,
					Password: redisOption.Password,
					DB:       redisOption.DB,
				},
			})

			go func() {
				monitoringAddr := fmt.Sprintf(":%s", conf.Queue.MonitoringPort)
				log.Printf("Asynqmon server listening on %s/monitoring", monitoringAddr)
				if err := http.ListenAndServe(monitoringAddr, h); err != nil {
					log.Printf("Error starting asynqmon server: %v", err)
				}
			}()

			if err := srv.Run(mux); err != nil {
				log.Fatal(err)
			}
		},
	}
	return cmd
}
