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

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	bank "github.com/OpenG2P/openg2p-g2p-bridge-example-bank"
	model2 "github.com/OpenG2P/openg2p-g2p-bridge-example-bank/api/model"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/database/mocks"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockDataSource) {
	t.Helper()

	cnf := &config.Configuration{
		Redis: config.RedisConfig{Dns: "localhost:6379"},
		Settlement: config.SettlementConfig{
			PaymentInitiateAttempts: 3,
			FailureRate:             30,
			ProcessPaymentFrequency: 10,
			StatementOpeningBalance: "100000000",
		},
	}

	ds := new(mocks.MockDataSource)
	b := bank.NewBank(ds, cnf)

	return NewAPI(b).Router(), ds
}

func postJSON(router *gin.Engine, route string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, route, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func postForm(router *gin.Engine, route string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, route, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func mockAccount() *model.Account {
	account := &model.Account{
		AccountNumber:      "ACC-1",
		AccountHolderName:  "Asha Patel",
		AccountHolderPhone: "254700000001",
		AccountCurrency:    "USD",
		BookBalance:        decimal.NewFromInt(10000),
		BlockedAmount:      decimal.NewFromInt(2000),
	}
	account.AvailableBalance = account.BookBalance.Sub(account.BlockedAmount)
	return account
}

func TestUSSDMenu(t *testing.T) {
	router, _ := setupRouter(t)

	resp := postForm(router, "/ussd", url.Values{
		"phoneNumber": {"+254700000001"},
		"text":        {""},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "CON What do you want to do \n1. Get account balance \n2. Initiate transfer", resp.Body.String())
}

func TestUSSDBalance(t *testing.T) {
	router, ds := setupRouter(t)

	ds.On("GetAccountByPhone", mock.Anything, "254700000001").Return(mockAccount(), nil)

	resp := postForm(router, "/ussd", url.Values{
		"phoneNumber": {"+254700000001"},
		"text":        {"1"},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "END Available balance is 8000", resp.Body.String())
}

func TestUSSDBalanceWithoutPlusPrefix(t *testing.T) {
	router, ds := setupRouter(t)

	ds.On("GetAccountByPhone", mock.Anything, "254700000001").Return(mockAccount(), nil)

	resp := postForm(router, "/ussd", url.Values{
		"phoneNumber": {"254700000001"},
		"text":        {"1"},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "END Available balance is 8000", resp.Body.String())
}

func TestUSSDInvalidChoice(t *testing.T) {
	router, _ := setupRouter(t)

	resp := postForm(router, "/ussd", url.Values{
		"phoneNumber": {"+254700000001"},
		"text":        {"9"},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "END Invalid choice selected!", resp.Body.String())
}

func TestCheckFunds(t *testing.T) {
	router, ds := setupRouter(t)

	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(mockAccount(), nil)

	resp := postJSON(router, "/check-funds", model2.CheckFunds{
		AccountNumber: "ACC-1",
		Amount:        decimal.NewFromInt(5000),
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, true, body["funds_available"])
}

func TestCheckFundsInsufficient(t *testing.T) {
	router, ds := setupRouter(t)

	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(mockAccount(), nil)

	resp := postJSON(router, "/check-funds", model2.CheckFunds{
		AccountNumber: "ACC-1",
		Amount:        decimal.NewFromInt(9000),
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, false, body["funds_available"])
}

func TestInitiatePayments(t *testing.T) {
	router, ds := setupRouter(t)

	ds.On("CreatePaymentBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp := postJSON(router, "/initiate-payments", model2.InitiatePayments{
		PaymentInstructions: []model2.PaymentInstruction{
			{
				RemittingAccount:            "ACC-1",
				RemittingAccountCurrency:    "USD",
				PaymentAmount:               decimal.NewFromInt(1000),
				FundsBlockedReferenceNumber: "blk_1",
			},
		},
	})

	assert.Equal(t, http.StatusAccepted, resp.Code)

	var batch model.PaymentBatch
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &batch))
	assert.Contains(t, batch.BatchID, "bat_")
	assert.Equal(t, model.BatchStatusPending, batch.PaymentStatus)
}

func TestInitiatePaymentsRejectsEmptyBatch(t *testing.T) {
	router, _ := setupRouter(t)

	resp := postJSON(router, "/initiate-payments", model2.InitiatePayments{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestInitiatePaymentsRejectsMissingBlockReference(t *testing.T) {
	router, _ := setupRouter(t)

	resp := postJSON(router, "/initiate-payments", model2.InitiatePayments{
		PaymentInstructions: []model2.PaymentInstruction{
			{
				RemittingAccount:         "ACC-1",
				RemittingAccountCurrency: "USD",
				PaymentAmount:            decimal.NewFromInt(1000),
			},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestBlockFunds(t *testing.T) {
	router, ds := setupRouter(t)

	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(mockAccount(), nil)
	ds.On("CreateFundBlock", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp := postJSON(router, "/block-funds", model2.BlockFunds{
		AccountNumber: "ACC-1",
		Currency:      "USD",
		Amount:        decimal.NewFromInt(3000),
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var block model.FundBlock
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &block))
	assert.Contains(t, block.BlockReferenceNo, "blk_")
	assert.True(t, block.BlockedAmount.Equal(decimal.NewFromInt(3000)))
}

func TestBlockFundsInsufficientBalance(t *testing.T) {
	router, ds := setupRouter(t)

	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(mockAccount(), nil)

	resp := postJSON(router, "/block-funds", model2.BlockFunds{
		AccountNumber: "ACC-1",
		Currency:      "USD",
		Amount:        decimal.NewFromInt(9000),
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestBlockFundsCurrencyMismatch(t *testing.T) {
	router, ds := setupRouter(t)

	ds.On("GetAccountByNumber", mock.Anything, "ACC-1").Return(mockAccount(), nil)

	resp := postJSON(router, "/block-funds", model2.BlockFunds{
		AccountNumber: "ACC-1",
		Currency:      "KES",
		Amount:        decimal.NewFromInt(100),
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
