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
	"math"
	"sort"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/viewlens/viewlens/catalog"
)

// TopTitles returns a new dataframe holding the n rows with the largest
// valueCol, descending. Ties keep original row order; rows with a missing
// value are never selected. Fewer than n rows are returned when the table is
// smaller.
func TopTitles(ctx context.Context, df *dataframe.DataFrame, valueCol string, n int) (*dataframe.DataFrame, error) {
	valueIdx, err := catalog.ColumnIndex(df, valueCol)
	if err != nil {
		return nil, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	valSeries := df.Series[valueIdx]

	type ranked struct {
		row int
		val float64
	}

	rows := []ranked{}
	nRows := df.NRows(dontLock)
	for row := 0; row < nRows; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if v, ok := valSeries.Value(row, dontLock).(float64); ok && !math.IsNaN(v) {
			rows = append(rows, ranked{row: row, val: v})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].val > rows[j].val
	})
	if len(rows) > n {
		rows = rows[:n]
	}

	series := make([]dataframe.Series, len(df.Series))
	for ii, s := range df.Series {
		series[ii] = emptyLike(s)
	}
	for _, r := range rows {
		for ii, s := range df.Series {
			series[ii].Append(s.Value(r.row, dontLock), dontLock)
		}
	}

	return dataframe.NewDataFrame(series...), nil
}

// emptyLike creates an empty series of the same concrete type and name
func emptyLike(s dataframe.Series) dataframe.Series {
	dontLock := dataframe.Options{DontLock: true}
	name := s.Name(dontLock)

	switch s.Type() {
	case "float64":
		return dataframe.NewSeriesFloat64(name, nil)
	case "int64", "int":
		return dataframe.NewSeriesInt64(name, nil)
	case "time":
		return dataframe.NewSeriesTime(name, nil)
	default:
		return dataframe.NewSeriesString(name, nil)
	}
}
