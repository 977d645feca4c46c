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

package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rs/zerolog/log"
)

// Derived column names added by PrepareDates and WithSeasons
const (
	MonthCol  = "Release Month"
	DayCol    = "Release Day"
	YearCol   = "Release Year"
	SeasonCol = "Release Season"
)

// release dates appear in ISO and US-style forms depending on the export
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
}

// PrepareDates parses the named column as calendar dates and derives the
// Release Month (1-12), Release Day (Monday..Sunday) and Release Year
// columns. Unparseable or empty values become missing in the date column and
// all three derived columns, and are counted. A new dataframe is returned;
// the input is not modified.
func PrepareDates(ctx context.Context, df *dataframe.DataFrame, dateCol string) (*dataframe.DataFrame, int, error) {
	colIdx, err := ColumnIndex(df, dateCol)
	if err != nil {
		return nil, 0, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	src := df.Series[colIdx]
	nRows := src.NRows(dontLock)

	dates := dataframe.NewSeriesTime(dateCol, &dataframe.SeriesInit{Capacity: nRows})
	months := dataframe.NewSeriesInt64(MonthCol, &dataframe.SeriesInit{Capacity: nRows})
	days := dataframe.NewSeriesString(DayCol, &dataframe.SeriesInit{Capacity: nRows})
	years := dataframe.NewSeriesInt64(YearCol, &dataframe.SeriesInit{Capacity: nRows})

	missing := 0
	iterator := src.ValuesIterator(dataframe.ValuesOptions{InitialRow: 0, Step: 1, DontReadLock: true})
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		row, val, _ := iterator()
		if row == nil {
			break
		}

		date, ok := coerceDate(val)
		if !ok {
			missing++
			dates.Append(nil, dontLock)
			months.Append(nil, dontLock)
			days.Append(nil, dontLock)
			years.Append(nil, dontLock)
			continue
		}

		dates.Append(date, dontLock)
		months.Append(int64(date.Month()), dontLock)
		days.Append(date.Weekday().String(), dontLock)
		years.Append(int64(date.Year()), dontLock)
	}

	if missing > 0 {
		log.Warn().Int("NumMissing", missing).Str("Column", dateCol).Msg("rows have invalid or missing dates")
	}

	series := make([]dataframe.Series, 0, len(df.Series)+3)
	for ii := range df.Series {
		if ii == colIdx {
			series = append(series, dates)
		} else {
			series = append(series, df.Series[ii].Copy())
		}
	}
	series = append(series, months, days, years)

	return dataframe.NewDataFrame(series...), missing, nil
}

func coerceDate(val interface{}) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if date, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return date, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
