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
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/model"
)

// seedCommands creates a handful of funded demo accounts so the bridge can
// be exercised against a fresh install.
func seedCommands(b *bankInstance) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "create demo accounts",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			for i := 0; i < count; i++ {
				account := model.Account{
					AccountHolderName:  gofakeit.Name(),
					AccountHolderPhone: gofakeit.Phone(),
					AccountCurrency:    "USD",
					BookBalance:        decimal.NewFromInt(int64(gofakeit.Number(10_000, 1_000_000))),
				}

				created, err := b.bank.CreateAccount(ctx, account)
				if err != nil {
					log.Fatalf("Error seeding account: %v", err)
				}
				log.Printf("seeded account %s (%s, balance %s)", created.AccountNumber, created.AccountHolderName, created.BookBalance)
			}
		},
	}
	cmd.Flags().IntVar(&count, "count", 5, "number of demo accounts to create")
	return cmd
}
