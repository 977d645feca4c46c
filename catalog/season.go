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

	"github.com/rocketlaunchr/dataframe-go"
)

// SeasonOrder is the canonical season ordering used by seasonal aggregates
var SeasonOrder = []string{"Winter", "Spring", "Summer", "Fall"}

// Season maps a month number (1-12) to its season name. Months outside the
// valid range yield an empty string.
func Season(month int) string {
	switch month {
	case 12, 1, 2:
		return "Winter"
	case 3, 4, 5:
		return "Spring"
	case 6, 7, 8:
		return "Summer"
	case 9, 10, 11:
		return "Fall"
	default:
		return ""
	}
}

// WithSeasons derives the Release Season column from Release Month. Rows with
// a missing month get a missing season. A new dataframe is returned.
func WithSeasons(ctx context.Context, df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	monthIdx, err := ColumnIndex(df, MonthCol)
	if err != nil {
		return nil, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	src := df.Series[monthIdx]
	seasons := dataframe.NewSeriesString(SeasonCol, &dataframe.SeriesInit{Capacity: src.NRows(dontLock)})

	iterator := src.ValuesIterator(dataframe.ValuesOptions{InitialRow: 0, Step: 1, DontReadLock: true})
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, val, _ := iterator()
		if row == nil {
			break
		}

		if month, ok := val.(int64); ok {
			seasons.Append(Season(int(month)), dontLock)
		} else {
			seasons.Append(nil, dontLock)
		}
	}

	series := make([]dataframe.Series, 0, len(df.Series)+1)
	for ii := range df.Series {
		series = append(series, df.Series[ii].Copy())
	}
	series = append(series, seasons)

	return dataframe.NewDataFrame(series...), nil
}
