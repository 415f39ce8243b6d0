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
	"log"

	"github.com/spf13/cobra"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/database"
)

// migrateCommands creates the database tables the bank runs on. Safe to
// re-run; every statement is CREATE TABLE IF NOT EXISTS.
func migrateCommands(_ *bankInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "create the example bank schema",
		Run: func(cmd *cobra.Command, args []string) {
			cnf, err := config.Fetch()
			if err != nil {
				log.Fatalf("Error fetching config: %v", err)
			}

			db, err := database.ConnectDB(cnf.DataSource.Dns)
			if err != nil {
				log.Fatalf("Error connecting to database: %v", err)
			}

			if err := database.CreateTables(db); err != nil {
				log.Fatalf("Error creating tables: %v", err)
			}

			log.Println("Migration applied successfully")
		},
	}
	return cmd
}
