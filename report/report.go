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

package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/viewlens/viewlens/catalog"
	"github.com/viewlens/viewlens/common"
	"github.com/viewlens/viewlens/insights"
)

// Config collects the pipeline settings for one analysis run
type Config struct {
	File           string
	HoursColumn    string
	DateColumn     string
	LanguageColumn string
	ContentColumn  string
	TitleColumn    string
	TopN           int
	HolidayDates   []time.Time
	HolidayWindow  int
}

// NewConfigFromViper builds a Config from the data.*, report.* and holiday.*
// settings, applying the documented defaults for anything unset
func NewConfigFromViper() *Config {
	cfg := &Config{
		File:           viper.GetString("data.file"),
		HoursColumn:    viper.GetString("data.hours_column"),
		DateColumn:     viper.GetString("data.date_column"),
		LanguageColumn: viper.GetString("data.language_column"),
		ContentColumn:  viper.GetString("data.content_column"),
		TitleColumn:    viper.GetString("data.title_column"),
		TopN:           viper.GetInt("report.top_n"),
		HolidayWindow:  viper.GetInt("holiday.window_days"),
		HolidayDates:   insights.ParseHolidays(viper.GetStringSlice("holiday.dates")),
	}

	if cfg.HoursColumn == "" {
		cfg.HoursColumn = "Hours Viewed"
	}
	if cfg.DateColumn == "" {
		cfg.DateColumn = "Release Date"
	}
	if cfg.LanguageColumn == "" {
		cfg.LanguageColumn = "Language Indicator"
	}
	if cfg.ContentColumn == "" {
		cfg.ContentColumn = "Content Type"
	}
	if cfg.TitleColumn == "" {
		cfg.TitleColumn = "Title"
	}
	if cfg.TopN == 0 {
		cfg.TopN = 10
	}
	if cfg.HolidayWindow == 0 {
		cfg.HolidayWindow = 3
	}
	if len(cfg.HolidayDates) == 0 {
		cfg.HolidayDates = insights.DefaultHolidays()
	}

	return cfg
}

// Report is the computed output of one pipeline run. Sections that could not
// be computed (missing optional column) are left nil / zero with a matching
// entry in Warnings.
type Report struct {
	ID          uuid.UUID
	Generated   time.Time
	Fingerprint string
	Config      *Config

	Rows         int
	Columns      []string
	MissingHours int
	MissingDates int

	ContentType   []insights.Bucket
	Language      []insights.Bucket
	Seasonal      *[4]float64
	MonthlySum    [12]float64
	MonthlyCounts [12]int
	WeekdaySum    [7]float64
	WeekdayCounts [7]int
	Pivot         []insights.PivotSeries

	Holiday *dataframe.DataFrame
	Top     *dataframe.DataFrame
	Table   *dataframe.DataFrame

	Warnings []string
}

// Build runs the full pipeline: load, clean the hours column, derive date
// columns and seasons, then compute every aggregate. Load and the two
// mandatory preprocessing steps fail the run; every downstream section
// degrades to a warning when its column is unavailable.
func Build(ctx context.Context, cfg *Config) (*Report, error) {
	rpt := &Report{
		ID:        uuid.New(),
		Generated: time.Now(),
		Config:    cfg,
	}

	df, err := catalog.Load(ctx, cfg.File)
	if err != nil {
		return nil, err
	}

	rpt.Fingerprint = common.FileFingerprint(cfg.File)
	rpt.Rows = df.NRows()
	rpt.Columns = df.Names()
	log.Info().Str("RunID", rpt.ID.String()).Str("File", cfg.File).
		Int("Rows", rpt.Rows).Int("Columns", len(rpt.Columns)).Msg("loaded dataset")

	df, missingHours, err := catalog.CleanHours(ctx, df, cfg.HoursColumn)
	if err != nil {
		return nil, err
	}
	rpt.MissingHours = missingHours

	df, missingDates, err := catalog.PrepareDates(ctx, df, cfg.DateColumn)
	if err != nil {
		return nil, err
	}
	rpt.MissingDates = missingDates

	df, err = catalog.WithSeasons(ctx, df)
	if err != nil {
		return nil, err
	}

	rpt.Columns = df.Names()
	rpt.Table = df

	rpt.buildAggregates(ctx, df)

	return rpt, nil
}

func (rpt *Report) buildAggregates(ctx context.Context, df *dataframe.DataFrame) {
	cfg := rpt.Config

	if buckets, dropped, err := insights.GroupSum(ctx, df, cfg.ContentColumn, cfg.HoursColumn); err == nil {
		rpt.ContentType = buckets
		if dropped > 0 {
			log.Debug().Int("Dropped", dropped).Str("Column", cfg.ContentColumn).Msg("rows without a group key excluded from aggregate")
		}
	} else {
		rpt.skip("content type viewership", err)
	}

	if buckets, dropped, err := insights.GroupSum(ctx, df, cfg.LanguageColumn, cfg.HoursColumn); err == nil {
		rpt.Language = buckets
		if dropped > 0 {
			log.Debug().Int("Dropped", dropped).Str("Column", cfg.LanguageColumn).Msg("rows without a group key excluded from aggregate")
		}
	} else {
		rpt.skip("language viewership", err)
	}

	if seasonal, err := insights.SeasonSum(ctx, df, cfg.HoursColumn); err == nil {
		rpt.Seasonal = &seasonal
	} else {
		rpt.skip("seasonal viewership", err)
	}

	// month and weekday columns always exist after PrepareDates succeeds
	if monthly, err := insights.MonthlySum(ctx, df, cfg.HoursColumn); err == nil {
		rpt.MonthlySum = monthly
	} else {
		rpt.skip("monthly viewership", err)
	}
	if counts, err := insights.MonthlyCounts(ctx, df); err == nil {
		rpt.MonthlyCounts = counts
	} else {
		rpt.skip("monthly release counts", err)
	}
	if weekday, err := insights.WeekdaySum(ctx, df, cfg.HoursColumn); err == nil {
		rpt.WeekdaySum = weekday
	} else {
		rpt.skip("weekday viewership", err)
	}
	if counts, err := insights.WeekdayCounts(ctx, df); err == nil {
		rpt.WeekdayCounts = counts
	} else {
		rpt.skip("weekday release counts", err)
	}

	if pivot, err := insights.MonthTypePivot(ctx, df, cfg.ContentColumn, cfg.HoursColumn); err == nil {
		rpt.Pivot = pivot
	} else {
		rpt.skip("viewership by type and month", err)
	}

	holiday, err := insights.HolidayReleases(ctx, df, cfg.DateColumn, cfg.HolidayDates, cfg.HolidayWindow)
	switch {
	case err != nil:
		rpt.skip("holiday releases", err)
	case holiday == nil:
		rpt.skip("holiday releases", &catalog.ColumnNotFoundError{Column: cfg.DateColumn, Available: rpt.Columns})
	default:
		rpt.Holiday = holiday
		if holiday.NRows() == 0 {
			rpt.warn("no releases found within the configured windows around holiday dates")
		}
	}

	if top, err := insights.TopTitles(ctx, df, cfg.HoursColumn, cfg.TopN); err == nil {
		rpt.Top = top
	} else {
		rpt.skip("top titles", err)
	}
}

func (rpt *Report) skip(section string, err error) {
	var colErr *catalog.ColumnNotFoundError
	if errors.As(err, &colErr) {
		rpt.warn(fmt.Sprintf("skipping %s: column %q missing", section, colErr.Column))
		return
	}
	rpt.warn(fmt.Sprintf("skipping %s: %v", section, err))
}

func (rpt *Report) warn(msg string) {
	rpt.Warnings = append(rpt.Warnings, msg)
	log.Warn().Str("RunID", rpt.ID.String()).Msg(msg)
}

// TotalHours is the grand total of the viewership metric across content
// types; used by the summary surfaces
func (rpt *Report) TotalHours() float64 {
	return insights.Total(rpt.ContentType)
}

// TopColumns returns the display columns for the top-N table, restricted to
// those present in the data
func (rpt *Report) TopColumns() []string {
	wanted := []string{rpt.Config.TitleColumn, rpt.Config.HoursColumn, rpt.Config.LanguageColumn, rpt.Config.ContentColumn, rpt.Config.DateColumn}
	cols := []string{}
	if rpt.Top == nil {
		return cols
	}
	available := map[string]bool{}
	for _, name := range rpt.Top.Names() {
		available[name] = true
	}
	for _, name := range wanted {
		if available[name] {
			cols = append(cols, name)
		}
	}
	return cols
}
