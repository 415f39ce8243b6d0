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

// Package bank implements the example bank used by the G2P payment bridge:
// account onboarding, fund blocking, batched payment settlement with
// simulated beneficiary-bank failures, and MT940 account statements.
package bank

import (
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/database"
)

// Bank is the main service struct. All API handlers and queue workers go
// through it. The configuration is fixed at construction; nothing in the
// service reads process-wide state mid-operation.
type Bank struct {
	cnf        *config.Configuration
	queue      *Queue
	datasource database.IDataSource
	failures   FailureSelector
}

// NewBank initializes a Bank with the provided datasource and
// configuration. The failure selector is seeded from the configured
// failure rate.
func NewBank(db database.IDataSource, configuration *config.Configuration) *Bank {
	return &Bank{
		cnf:        configuration,
		datasource: db,
		queue:      NewQueue(configuration),
		failures:   NewRandomFailureSelector(configuration.Settlement.FailureRate),
	}
}
