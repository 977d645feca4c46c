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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rs/zerolog/log"
	"github.com/viewlens/viewlens/common"
	"github.com/viewlens/viewlens/plots"
)

// Dashboard serves the full analysis page. Rendered pages are cached against
// the dataset fingerprint so repeat requests between refreshes are free.
func Dashboard(c *fiber.Ctx) error {
	rpt := currentReport()
	if rpt == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "no report available; check the data file and server logs")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	if rpt.Fingerprint != "" {
		if page, ok := common.CacheGet(rpt.Fingerprint); ok {
			return c.Send(page)
		}
	}

	buf, err := plots.Dashboard(rpt)
	if err != nil {
		log.Error().Err(err).Msg("could not render dashboard")
		return fiber.ErrInternalServerError
	}

	if rpt.Fingerprint != "" {
		common.CacheSet(rpt.Fingerprint, buf.Bytes())
	}
	return c.Send(buf.Bytes())
}

// TopTitles returns the top-N rows as JSON records
func TopTitles(c *fiber.Ctx) error {
	rpt := currentReport()
	if rpt == nil {
		return fiber.ErrServiceUnavailable
	}
	if rpt.Top == nil {
		return fiber.ErrNotFound
	}
	return c.JSON(dataFrameRecords(rpt.Top, rpt.TopColumns()))
}

// HolidayReleases returns the holiday-window matches as JSON records
func HolidayReleases(c *fiber.Ctx) error {
	rpt := currentReport()
	if rpt == nil {
		return fiber.ErrServiceUnavailable
	}
	if rpt.Holiday == nil {
		return fiber.ErrNotFound
	}
	return c.JSON(dataFrameRecords(rpt.Holiday, rpt.Holiday.Names()))
}

func dataFrameRecords(df *dataframe.DataFrame, cols []string) []map[string]interface{} {
	colIdx := map[string]int{}
	for idx, name := range df.Names() {
		colIdx[name] = idx
	}

	nRows := df.NRows()
	records := make([]map[string]interface{}, 0, nRows)
	for row := 0; row < nRows; row++ {
		record := map[string]interface{}{}
		for _, name := range cols {
			val := df.Series[colIdx[name]].Value(row)
			if date, ok := val.(time.Time); ok {
				val = date.Format("2006-01-02")
			}
			record[name] = val
		}
		records = append(records, record)
	}
	return records
}
