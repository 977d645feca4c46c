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
	"os"

	"github.com/viewlens/viewlens/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Dataset
	viper.BindEnv("data.file", "VIEWLENS_DATA_FILE")
	rootCmd.PersistentFlags().StringP("file", "f", "netflix_content.csv", "Path or URL of the dataset (CSV or XLSX)")
	viper.BindPFlag("data.file", rootCmd.PersistentFlags().Lookup("file"))

	rootCmd.PersistentFlags().String("hours-column", "Hours Viewed", "Name of the viewership hours column")
	viper.BindPFlag("data.hours_column", rootCmd.PersistentFlags().Lookup("hours-column"))

	rootCmd.PersistentFlags().String("date-column", "Release Date", "Name of the release date column")
	viper.BindPFlag("data.date_column", rootCmd.PersistentFlags().Lookup("date-column"))

	rootCmd.PersistentFlags().String("language-column", "Language Indicator", "Name of the language column")
	viper.BindPFlag("data.language_column", rootCmd.PersistentFlags().Lookup("language-column"))

	// Holiday analysis
	rootCmd.PersistentFlags().Int("holiday-window", 3, "Days around a holiday that count as a holiday release")
	viper.BindPFlag("holiday.window_days", rootCmd.PersistentFlags().Lookup("holiday-window"))

	rootCmd.PersistentFlags().StringSlice("holiday-dates", nil, "Override holiday reference dates (YYYY-MM-DD)")
	viper.BindPFlag("holiday.dates", rootCmd.PersistentFlags().Lookup("holiday-dates"))

	// Logging configuration
	viper.BindEnv("log.level", "VIEWLENS_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "VIEWLENS_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "VIEWLENS_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	rootCmd.PersistentFlags().Bool("log-pretty", false, "Print colorized logs")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

var rootCmd = &cobra.Command{
	Use:     "viewlens",
	Version: common.CurrentVersion.String(),
	Short:   "viewlens analyzes content viewership datasets",
	Long: `viewlens ingests a tabular dataset of media titles with viewership metrics,
cleans and enriches it with derived date attributes, and produces aggregate
charts and summary tables as batch artifacts or an interactive dashboard.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
