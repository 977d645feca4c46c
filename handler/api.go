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

package handler

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/viewlens/viewlens/insights"
	"github.com/viewlens/viewlens/report"
)

var (
	mu      sync.RWMutex
	current *report.Report
)

// SetReport publishes a freshly built report; the serve command calls this at
// startup and after every scheduled dataset refresh
func SetReport(rpt *report.Report) {
	mu.Lock()
	defer mu.Unlock()
	current = rpt
}

func currentReport() *report.Report {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

type PingResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"API is alive"`
	Time    string `json:"time" example:"2023-06-19T08:09:10.115924-05:00"`
}

func Ping(c *fiber.Ctx) error {
	now, _ := time.Now().MarshalText()
	return c.JSON(PingResponse{
		Status:  "success",
		Message: "API is alive",
		Time:    string(now),
	})
}

type SummaryResponse struct {
	RunID        string   `json:"run_id"`
	Generated    string   `json:"generated"`
	Fingerprint  string   `json:"fingerprint"`
	Rows         int      `json:"rows"`
	Columns      []string `json:"columns"`
	MissingHours int      `json:"missing_hours"`
	MissingDates int      `json:"missing_dates"`
	TotalHours   float64  `json:"total_hours"`
	Warnings     []string `json:"warnings"`
}

// Summary reports row/column counts, coercion warnings and the grand total
func Summary(c *fiber.Ctx) error {
	rpt := currentReport()
	if rpt == nil {
		return fiber.ErrServiceUnavailable
	}

	return c.JSON(SummaryResponse{
		RunID:        rpt.ID.String(),
		Generated:    rpt.Generated.Format(time.RFC3339),
		Fingerprint:  rpt.Fingerprint,
		Rows:         rpt.Rows,
		Columns:      rpt.Columns,
		MissingHours: rpt.MissingHours,
		MissingDates: rpt.MissingDates,
		TotalHours:   rpt.TotalHours(),
		Warnings:     rpt.Warnings,
	})
}

type seriesResponse struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type countSeriesResponse struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Aggregate returns a single aggregate section as JSON. Sections the report
// skipped return 404.
func Aggregate(c *fiber.Ctx) error {
	rpt := currentReport()
	if rpt == nil {
		return fiber.ErrServiceUnavailable
	}

	name := c.Params("name")
	switch name {
	case "content-type":
		if rpt.ContentType == nil {
			return fiber.ErrNotFound
		}
		return c.JSON(rpt.ContentType)
	case "language":
		if rpt.Language == nil {
			return fiber.ErrNotFound
		}
		return c.JSON(rpt.Language)
	case "seasonal":
		if rpt.Seasonal == nil {
			return fiber.ErrNotFound
		}
		return c.JSON(seriesResponse{Labels: seasonLabels(), Values: rpt.Seasonal[:]})
	case "monthly":
		return c.JSON(seriesResponse{Labels: monthLabels(), Values: rpt.MonthlySum[:]})
	case "monthly-releases":
		return c.JSON(countSeriesResponse{Labels: monthLabels(), Values: rpt.MonthlyCounts[:]})
	case "weekday":
		return c.JSON(seriesResponse{Labels: insights.WeekdayOrder, Values: rpt.WeekdaySum[:]})
	case "weekday-releases":
		return c.JSON(countSeriesResponse{Labels: insights.WeekdayOrder, Values: rpt.WeekdayCounts[:]})
	case "month-type-pivot":
		if rpt.Pivot == nil {
			return fiber.ErrNotFound
		}
		return c.JSON(rpt.Pivot)
	default:
		log.Debug().Str("Aggregate", name).Msg("unknown aggregate requested")
		return fiber.ErrNotFound
	}
}

func monthLabels() []string {
	labels := make([]string, 12)
	for ii := range labels {
		labels[ii] = time.Month(ii + 1).String()
	}
	return labels
}

func seasonLabels() []string {
	return []string{"Winter", "Spring", "Summer", "Fall"}
}
