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

package insights

import (
	"context"
	"time"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rs/zerolog/log"
	"github.com/viewlens/viewlens/catalog"
)

// DefaultHolidays returns the reference dates used when none are configured:
// New Year, Valentine's Day, Independence Day, Halloween and Christmas 2023.
func DefaultHolidays() []time.Time {
	return []time.Time{
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.February, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.July, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.October, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC),
	}
}

// ParseHolidays converts YYYY-MM-DD strings into reference dates; malformed
// entries are skipped with a warning.
func ParseHolidays(dates []string) []time.Time {
	out := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		date, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			log.Warn().Str("Date", s).Msg("ignoring malformed holiday date")
			continue
		}
		out = append(out, date)
	}
	return out
}

// HolidayReleases returns the rows whose release date falls within windowDays
// (inclusive) of any reference date, in original row order. A missing date
// column yields a nil result and no error so callers can skip the section.
func HolidayReleases(ctx context.Context, df *dataframe.DataFrame, dateCol string, refs []time.Time, windowDays int) (*dataframe.DataFrame, error) {
	if _, err := catalog.ColumnIndex(df, dateCol); err != nil {
		return nil, nil
	}

	filterFn := dataframe.FilterDataFrameFn(func(vals map[interface{}]interface{}, row, nRows int) (dataframe.FilterAction, error) {
		date, ok := vals[dateCol].(time.Time)
		if !ok {
			return dataframe.DROP, nil
		}
		for _, ref := range refs {
			if absDays(date, ref) <= windowDays {
				return dataframe.KEEP, nil
			}
		}
		return dataframe.DROP, nil
	})

	res, err := dataframe.Filter(ctx, df, filterFn, dataframe.FilterOptions{})
	if err != nil {
		return nil, err
	}

	return res.(*dataframe.DataFrame), nil
}

// absDays is the absolute calendar-day distance between two dates,
// independent of any time-of-day component
func absDays(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
