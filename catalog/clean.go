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
	"math"
	"strconv"
	"strings"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rs/zerolog/log"
)

// CleanHours coerces the named column to float64. Thousands separators and
// surrounding whitespace are stripped before parsing; values that still fail
// to parse become NaN and are counted. The input dataframe is not modified; a
// new dataframe with the coerced column is returned along with the number of
// missing values. Re-running on an already clean column is a no-op.
func CleanHours(ctx context.Context, df *dataframe.DataFrame, col string) (*dataframe.DataFrame, int, error) {
	colIdx, err := ColumnIndex(df, col)
	if err != nil {
		return nil, 0, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	src := df.Series[colIdx]
	cleaned := dataframe.NewSeriesFloat64(col, &dataframe.SeriesInit{Capacity: src.NRows(dontLock)})

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

		v := coerceHours(val)
		if math.IsNaN(v) {
			missing++
		}
		cleaned.Append(v, dontLock)
	}

	if missing > 0 {
		log.Warn().Int("NumMissing", missing).Str("Column", col).Msg("rows have missing values after cleaning")
	}

	series := make([]dataframe.Series, len(df.Series))
	for ii := range df.Series {
		if ii == colIdx {
			series[ii] = cleaned
		} else {
			series[ii] = df.Series[ii].Copy()
		}
	}

	return dataframe.NewDataFrame(series...), missing, nil
}

func coerceHours(val interface{}) float64 {
	switch v := val.(type) {
	case nil:
		return math.NaN()
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return parsed
	default:
		return math.NaN()
	}
}
