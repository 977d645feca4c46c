// Copyright 2023-2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viewlens/viewlens/common"
	"github.com/viewlens/viewlens/handler"
	"github.com/viewlens/viewlens/report"
	"github.com/viewlens/viewlens/router"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run the dashboard server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	serveCmd.Flags().Int("refresh-minutes", 5, "How often to check the dataset for changes")
	viper.BindPFlag("server.refresh_minutes", serveCmd.Flags().Lookup("refresh-minutes"))

	serveCmd.Flags().IntP("top-n", "n", 5, "How many top titles to show on the dashboard")
	viper.BindPFlag("report.top_n", serveCmd.Flags().Lookup("top-n"))

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive dashboard server",
	Long:  `Run an HTTP server that renders the analysis as a live dashboard and exposes the aggregates over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()

		cfg := report.NewConfigFromViper()

		// an initial build failure is not fatal in interactive mode; the
		// dashboard reports the problem and retries on the next refresh
		refreshReport(cfg)

		// Create new Fiber instance
		app := fiber.New(fiber.Config{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		})

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c // block until signal is read
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			if err := app.Shutdown(); err != nil {
				log.Fatal().Err(err).Msg("could not shutdown server")
			}
		}()

		// Configure CORS
		app.Use(cors.New(cors.Config{
			AllowHeaders: "*",
			AllowMethods: "GET,HEAD",
		}))

		// Setup routes
		router.SetupRoutes(app)

		// periodically rebuild the report when the dataset changes
		refreshMinutes := viper.GetInt("server.refresh_minutes")
		if refreshMinutes <= 0 {
			refreshMinutes = 5
		}
		scheduler := gocron.NewScheduler(time.UTC)
		scheduler.Every(refreshMinutes).Minutes().Do(func() {
			refreshReport(cfg)
		})
		scheduler.StartAsync()

		if err := app.Listen(fmt.Sprintf(":%d", viper.GetInt("server.port"))); err != nil {
			log.Fatal().Err(err).Msg("server terminated")
		}
	},
}

var lastFingerprint string

func refreshReport(cfg *report.Config) {
	fingerprint := common.FileFingerprint(cfg.File)
	if fingerprint != "" && fingerprint == lastFingerprint {
		log.Debug().Str("Fingerprint", fingerprint).Msg("dataset unchanged; keeping current report")
		return
	}

	rpt, err := report.Build(context.Background(), cfg)
	if err != nil {
		log.Error().Err(err).Str("File", cfg.File).Msg("could not rebuild report")
		return
	}

	lastFingerprint = rpt.Fingerprint
	handler.SetReport(rpt)
	log.Info().Str("RunID", rpt.ID.String()).Str("Fingerprint", rpt.Fingerprint).Msg("report refreshed")
}
