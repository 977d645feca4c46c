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
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viewlens/viewlens/common"
	"github.com/viewlens/viewlens/plots"
	"github.com/viewlens/viewlens/report"
)

func init() {
	analyzeCmd.Flags().IntP("top-n", "n", 10, "How many top titles to print")
	viper.BindPFlag("report.top_n", analyzeCmd.Flags().Lookup("top-n"))

	analyzeCmd.Flags().StringP("output-dir", "o", "outputs", "Directory to write chart and table artifacts to")
	viper.BindPFlag("report.output_dir", analyzeCmd.Flags().Lookup("output-dir"))

	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the analysis pipeline and write artifacts",
	Long:  `Run the full enrichment and aggregation pipeline over the dataset and write one interactive HTML chart per aggregate plus a holiday release table.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		ctx := context.Background()

		cfg := report.NewConfigFromViper()
		rpt, err := report.Build(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Str("File", cfg.File).Msg("could not analyze dataset")
		}

		fmt.Printf("Loaded data: %d rows, %d columns\n", rpt.Rows, len(rpt.Columns))
		fmt.Printf("Columns available: %s\n", strings.Join(rpt.Columns, ", "))

		outputDir := viper.GetString("report.output_dir")
		if outputDir == "" {
			outputDir = "outputs"
		}
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			log.Fatal().Err(err).Str("Dir", outputDir).Msg("could not create output directory")
		}

		saveCharts(rpt, outputDir)
		saveHolidayReleases(rpt, outputDir)
		printTopTitles(rpt)

		fmt.Printf("\nAll interactive plots and tables have been saved to the %q folder.\n", outputDir)
	},
}

func saveCharts(rpt *report.Report, outputDir string) {
	save := func(chart plots.Renderer, name string) {
		path, err := plots.Save(chart, outputDir, name)
		if err != nil {
			log.Error().Err(err).Str("Chart", name).Msg("could not save chart")
			return
		}
		fmt.Printf("Saved interactive plot: %s\n", path)
	}

	if rpt.ContentType != nil {
		save(plots.ContentTypeBar(rpt.ContentType), "viewership_by_content_type")
	}
	if rpt.Language != nil {
		save(plots.LanguageBar(rpt.Language), "viewership_by_language")
	}
	save(plots.MonthlyLine(rpt.MonthlySum), "monthly_viewership")
	if rpt.Pivot != nil {
		save(plots.MonthTypeLines(rpt.Pivot), "monthly_viewership_by_type")
	}
	if rpt.Seasonal != nil {
		save(plots.SeasonalBar(*rpt.Seasonal), "seasonal_viewership")
	}
	save(plots.MonthlyPatterns(rpt.MonthlyCounts, rpt.MonthlySum), "monthly_releases_and_viewership")
	save(plots.WeekdayPatterns(rpt.WeekdayCounts, rpt.WeekdaySum), "weekday_release_patterns")
}

func saveHolidayReleases(rpt *report.Report, outputDir string) {
	if rpt.Holiday == nil {
		return
	}
	if rpt.Holiday.NRows() == 0 {
		fmt.Println("No releases found within the specified windows around important dates.")
		return
	}

	path := filepath.Join(outputDir, "holiday_releases.csv")
	fh, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Str("Path", path).Msg("could not create holiday releases table")
		return
	}
	defer fh.Close()

	if err := exports.ExportToCSV(context.Background(), fh, rpt.Holiday); err != nil {
		log.Error().Err(err).Str("Path", path).Msg("could not write holiday releases table")
		return
	}
	fmt.Printf("Saved holiday releases table: %s\n", path)
}

func printTopTitles(rpt *report.Report) {
	if rpt.Top == nil {
		fmt.Println("Viewership column missing. Cannot compute top titles.")
		return
	}

	cols := rpt.TopColumns()
	colIdx := map[string]int{}
	for idx, name := range rpt.Top.Names() {
		colIdx[name] = idx
	}

	fmt.Println("\nTop titles:")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(cols)
	table.SetBorder(false)

	nRows := rpt.Top.NRows()
	for row := 0; row < nRows; row++ {
		out := make([]string, 0, len(cols))
		for _, name := range cols {
			switch v := rpt.Top.Series[colIdx[name]].Value(row).(type) {
			case nil:
				out = append(out, "")
			case time.Time:
				out = append(out, v.Format("2006-01-02"))
			case float64:
				out = append(out, fmt.Sprintf("%.1f", v))
			default:
				out = append(out, fmt.Sprintf("%v", v))
			}
		}
		table.Append(out)
	}
	table.Render()
}
