package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/internal/apierror"
)

func TestRequestAccountStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("INSERT INTO account_statements").
		WithArgs("ACC-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	statement, err := ds.RequestAccountStatement(context.Background(), "ACC-1", time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), statement.ID)
	assert.Equal(t, "ACC-1", statement.AccountNumber)
	assert.Empty(t, statement.AccountStatementLob)
}

func TestGetAccountStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	rows := sqlmock.NewRows([]string{"id", "account_number", "account_statement_date", "account_statement_lob", "created_at"}).
		AddRow(42, "ACC-1", time.Now(), ":20:42", time.Now())

	mock.ExpectQuery("SELECT .* FROM account_statements WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	statement, err := ds.GetAccountStatement(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, ":20:42", statement.AccountStatementLob)
}

func TestSaveAccountStatementLob(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectExec("UPDATE account_statements").
		WithArgs(int64(42), ":20:42").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = ds.SaveAccountStatementLob(context.Background(), 42, ":20:42")
	assert.NoError(t, err)
}

func TestSaveAccountStatementLob_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectExec("UPDATE account_statements").
		WithArgs(int64(99), "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = ds.SaveAccountStatementLob(context.Background(), 99, "")
	assert.Error(t, err)

	apiErr, ok := err.(apierror.APIError)
	assert.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}
