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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "5002"

	DefaultPaymentInitiateAttempts = 3
	DefaultFailureRate             = 30
	DefaultProcessPaymentFrequency = 10
)

// DefaultOpeningBalance is the fixed opening balance stamped on every
// generated statement.
const DefaultOpeningBalance = "100000000"

var ConfigStore atomic.Value

type ServerConfig struct {
	Port string `json:"port" envconfig:"EXAMPLE_BANK_SERVER_PORT"`
}

type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"EXAMPLE_BANK_DATA_SOURCE_DNS"`
}

type RedisConfig struct {
	Dns string `json:"dns" envconfig:"EXAMPLE_BANK_REDIS_DNS"`
}

type QueueConfig struct {
	PaymentQueue   string `json:"payment_queue" envconfig:"EXAMPLE_BANK_QUEUE_PAYMENT"`
	StatementQueue string `json:"statement_queue" envconfig:"EXAMPLE_BANK_QUEUE_STATEMENT"`
	MonitoringPort string `json:"monitoring_port" envconfig:"EXAMPLE_BANK_QUEUE_MONITORING_PORT"`
}

// SettlementConfig carries the knobs of the settlement core. FailureRate is
// the percentage of settled instructions selected for simulated failure.
type SettlementConfig struct {
	PaymentInitiateAttempts int    `json:"payment_initiate_attempts" envconfig:"EXAMPLE_BANK_PAYMENT_INITIATE_ATTEMPTS"`
	FailureRate             int    `json:"failure_rate" envconfig:"EXAMPLE_BANK_FAILURE_RATE"`
	ProcessPaymentFrequency int    `json:"process_payment_frequency" envconfig:"EXAMPLE_BANK_PROCESS_PAYMENT_FREQUENCY"`
	StatementOpeningBalance string `json:"statement_opening_balance" envconfig:"EXAMPLE_BANK_STATEMENT_OPENING_BALANCE"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"EXAMPLE_BANK_SLACK_WEBHOOK_URL"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName  string           `json:"project_name" envconfig:"EXAMPLE_BANK_PROJECT_NAME"`
	Server       ServerConfig     `json:"server"`
	DataSource   DataSourceConfig `json:"data_source"`
	Redis        RedisConfig      `json:"redis"`
	Queue        QueueConfig      `json:"queue"`
	Settlement   SettlementConfig `json:"settlement"`
	Notification Notification     `json:"notification"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("example_bank", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called bank.json with your config")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Example Bank"
	}

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	if cnf.Redis.Dns == "" {
		log.Println("Error: Redis DNS is empty. It's a required field.")
		return errors.New("redis DNS is required")
	}

	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)

	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Queue.PaymentQueue == "" {
		cnf.Queue.PaymentQueue = "example_bank:process_payments"
	}
	if cnf.Queue.StatementQueue == "" {
		cnf.Queue.StatementQueue = "example_bank:account_statements"
	}
	if cnf.Queue.MonitoringPort == "" {
		cnf.Queue.MonitoringPort = "5003"
	}

	if cnf.Settlement.PaymentInitiateAttempts <= 0 {
		cnf.Settlement.PaymentInitiateAttempts = DefaultPaymentInitiateAttempts
	}
	if cnf.Settlement.FailureRate <= 0 {
		cnf.Settlement.FailureRate = DefaultFailureRate
	}
	if cnf.Settlement.ProcessPaymentFrequency <= 0 {
		cnf.Settlement.ProcessPaymentFrequency = DefaultProcessPaymentFrequency
	}
	if cnf.Settlement.StatementOpeningBalance == "" {
		cnf.Settlement.StatementOpeningBalance = DefaultOpeningBalance
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
