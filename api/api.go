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
	"github.com/gin-gonic/gin"

	bank "github.com/OpenG2P/openg2p-g2p-bridge-example-bank"
)

type Api struct {
	bank   *bank.Bank
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/accounts", a.CreateAccount)
	router.GET("/accounts", a.GetAllAccounts)
	router.GET("/accounts/:account_number", a.GetAccount)

	router.POST("/block-funds", a.BlockFunds)
	router.POST("/check-funds", a.CheckFunds)
	router.GET("/fund-blocks/:reference", a.GetFundBlock)

	router.POST("/initiate-payments", a.InitiatePayments)

	router.POST("/statements", a.RequestStatement)
	router.GET("/statements/:id", a.GetStatement)

	router.POST("/ussd", a.USSD)
	return a.router
}

func NewAPI(b *bank.Bank) *Api {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{bank: b, router: r}
}
