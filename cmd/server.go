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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/api"
	"github.com/OpenG2P/openg2p-g2p-bridge-example-bank/config"
)

func initializeRouter(b *bankInstance) *gin.Engine {
	return api.NewAPI(b.bank).Router()
}

func startServer(router *gin.Engine, cfg config.ServerConfig) error {
	log.Printf("Starting server on http://localhost:%s", cfg.Port)
	return router.Run(":" + cfg.Port)
}

// serverCommands returns the command that starts the HTTP API server.
func serverCommands(b *bankInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "start the example bank api server",
		Run: func(cmd *cobra.Command, args []string) {
			router := initializeRouter(b)
			if err := startServer(router, b.cnf.Server); err != nil {
				log.Fatal(err)
			}
		},
	}
	return cmd
}
