package database

import (
	"database/sql"
	"log"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
)

type Datasource struct {
	Conn *sql.DB
}

// NewDataSource opens a connection for the configured DSN. Callers own the
// returned datasource; there is no shared instance.
func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := ConnectDB(configuration.DataSource.Dns)
	if err != nil {
		return nil, err
	}
	return &Datasource{Conn: con}, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database connection error: %v", err)
		return nil, err
	}
	return db, nil
}

// CreateTables creates the bank schema if it does not exist yet.
func CreateTables(db *sql.DB) error {
	if err := createAccountTable(db); err != nil {
		return err
	}
	if err := createFundBlockTable(db); err != nil {
		return err
	}
	if err := createPaymentBatchTable(db); err != nil {
		return err
	}
	if err := createPaymentInstructionTable(db); err != nil {
		return err
	}
	if err := createAccountingLogTable(db); err != nil {
		return err
	}
	return createAccountStatementTable(db)
}

// createAccountTable creates a PostgreSQL table for the Account struct
func createAccountTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			account_number TEXT NOT NULL UNIQUE,
			account_holder_name TEXT NOT NULL,
			account_holder_phone TEXT,
			account_currency TEXT NOT NULL,
			book_balance NUMERIC NOT NULL DEFAULT 0,
			blocked_amount NUMERIC NOT NULL DEFAULT 0,
			available_balance NUMERIC NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating accounts table: %v", err)
	}
	return err
}

// createFundBlockTable creates a PostgreSQL table for the FundBlock struct
func createFundBlockTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fund_blocks (
			id SERIAL PRIMARY KEY,
			block_reference_no TEXT NOT NULL UNIQUE,
			account_number TEXT NOT NULL REFERENCES accounts(account_number),
			currency TEXT NOT NULL,
			blocked_amount NUMERIC NOT NULL,
			amount_released NUMERIC NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating fund_blocks table: %v", err)
	}
	return err
}

// createPaymentBatchTable creates a PostgreSQL table for the PaymentBatch struct
func createPaymentBatchTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS payment_batches (
			id SERIAL PRIMARY KEY,
			batch_id TEXT NOT NULL UNIQUE,
			payment_status TEXT NOT NULL DEFAULT 'PENDING',
			payment_initiate_attempts INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating payment_batches table: %v", err)
	}
	return err
}

// createPaymentInstructionTable creates a PostgreSQL table for the PaymentInstruction struct
func createPaymentInstructionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS payment_instructions (
			id SERIAL PRIMARY KEY,
			batch_id TEXT NOT NULL REFERENCES payment_batches(batch_id),
			payment_reference_number TEXT NOT NULL UNIQUE,
			remitting_account TEXT NOT NULL,
			remitting_account_currency TEXT NOT NULL,
			payment_amount NUMERIC NOT NULL,
			funds_blocked_reference_number TEXT NOT NULL,
			narrative_1 TEXT,
			narrative_2 TEXT,
			narrative_3 TEXT,
			narrative_4 TEXT,
			narrative_5 TEXT,
			narrative_6 TEXT,
			status TEXT NOT NULL DEFAULT 'PENDING',
			attempts INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating payment_instructions table: %v", err)
	}
	return err
}

// createAccountingLogTable creates a PostgreSQL table for the AccountingLog struct
func createAccountingLogTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounting_logs (
			id SERIAL PRIMARY KEY,
			reference_no TEXT NOT NULL UNIQUE,
			corresponding_block_reference_no TEXT,
			customer_reference_no TEXT,
			debit_credit TEXT NOT NULL,
			account_number TEXT NOT NULL,
			transaction_amount NUMERIC NOT NULL,
			transaction_date TIMESTAMP NOT NULL,
			transaction_currency TEXT NOT NULL,
			transaction_code TEXT,
			narrative_1 TEXT,
			narrative_2 TEXT,
			narrative_3 TEXT,
			narrative_4 TEXT,
			narrative_5 TEXT,
			narrative_6 TEXT,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)
	`)
	if err != nil {
		log.Printf("Error creating accounting_logs table: %v", err)
	}
	return err
}

// createAccountStatementTable creates a PostgreSQL table for the AccountStatement struct
func createAccountStatementTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS account_statements (
			id SERIAL PRIMARY KEY,
			account_number TEXT NOT NULL REFERENCES accounts(account_number),
			account_statement_date TIMESTAMP NOT NULL,
			account_statement_lob TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Printf("Error creating account_statements table: %v", err)
	}
	return err
}
