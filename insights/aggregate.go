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
	"gonum.org/v1/gonum/floats"
)

// WeekdayOrder is the canonical week ordering used by weekday aggregates
var WeekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Bucket is one entry of a group-sum aggregate
type Bucket struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// Total sums the bucket totals
func Total(buckets []Bucket) float64 {
	vals := make([]float64, len(buckets))
	for ii, bucket := range buckets {
		vals[ii] = bucket.Total
	}
	return floats.Sum(vals)
}

// GroupSum sums valueCol grouped by the distinct values of groupCol. Results
// are sorted descending by total; ties keep first-appearance order. Rows with
// a missing group key are dropped and counted; NaN values contribute nothing
// to their bucket.
func GroupSum(ctx context.Context, df *dataframe.DataFrame, groupCol string, valueCol string) ([]Bucket, int, error) {
	groupIdx, err := catalog.ColumnIndex(df, groupCol)
	if err != nil {
		return nil, 0, err
	}
	valueIdx, err := catalog.ColumnIndex(df, valueCol)
	if err != nil {
		return nil, 0, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	keySeries := df.Series[groupIdx]
	valSeries := df.Series[valueIdx]

	totals := map[string]float64{}
	order := []string{}
	dropped := 0

	nRows := df.NRows(dontLock)
	for row := 0; row < nRows; row++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		key, ok := keySeries.Value(row, dontLock).(string)
		if !ok {
			dropped++
			continue
		}
		if _, seen := totals[key]; !seen {
			totals[key] = 0
			order = append(order, key)
		}
		if v, ok := valSeries.Value(row, dontLock).(float64); ok && !math.IsNaN(v) {
			totals[key] += v
		}
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, Bucket{Key: key, Total: totals[key]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Total > buckets[j].Total
	})

	return buckets, dropped, nil
}

// SeasonSum sums valueCol grouped by Release Season, reindexed to the fixed
// Winter, Spring, Summer, Fall order with zero-fill for absent seasons.
func SeasonSum(ctx context.Context, df *dataframe.DataFrame, valueCol string) ([4]float64, error) {
	var out [4]float64

	buckets, _, err := GroupSum(ctx, df, catalog.SeasonCol, valueCol)
	if err != nil {
		return out, err
	}

	for _, bucket := range buckets {
		for ii, season := range catalog.SeasonOrder {
			if bucket.Key == season {
				out[ii] = bucket.Total
			}
		}
	}

	return out, nil
}

// MonthlySum sums valueCol grouped by Release Month, reindexed to the full
// 1..12 domain with zero-fill for months absent from the data.
func MonthlySum(ctx context.Context, df *dataframe.DataFrame, valueCol string) ([12]float64, error) {
	var out [12]float64

	monthIdx, err := catalog.ColumnIndex(df, catalog.MonthCol)
	if err != nil {
		return out, err
	}
	valueIdx, err := catalog.ColumnIndex(df, valueCol)
	if err != nil {
		return out, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	monthSeries := df.Series[monthIdx]
	valSeries := df.Series[valueIdx]

	nRows := df.NRows(dontLock)
	for row := 0; row < nRows; row++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		month, ok := monthSeries.Value(row, dontLock).(int64)
		if !ok || month < 1 || month > 12 {
			continue
		}
		if v, ok := valSeries.Value(row, dontLock).(float64); ok && !math.IsNaN(v) {
			out[month-1] += v
		}
	}

	return out, nil
}

// MonthlyCounts counts rows per Release Month over the full 1..12 domain
func MonthlyCounts(ctx context.Context, df *dataframe.DataFrame) ([12]int, error) {
	var out [12]int

	monthIdx, err := catalog.ColumnIndex(df, catalog.MonthCol)
	if err != nil {
		return out, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	monthSeries := df.Series[monthIdx]

	nRows := df.NRows(dontLock)
	for row := 0; row < nRows; row++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		if month, ok := monthSeries.Value(row, dontLock).(int64); ok && month >= 1 && month <= 12 {
			out[month-1]++
		}
	}

	return out, nil
}

// WeekdaySum sums valueCol grouped by Release Day, reindexed to the fixed
// Monday..Sunday order with zero-fill for absent days.
func WeekdaySum(ctx context.Context, df *dataframe.DataFrame, valueCol string) ([7]float64, error) {
	var out [7]float64

	buckets, _, err := GroupSum(ctx, df, catalog.DayCol, valueCol)
	if err != nil {
		return out, err
	}

	for _, bucket := range buckets {
		for ii, day := range WeekdayOrder {
			if bucket.Key == day {
				out[ii] = bucket.Total
			}
		}
	}

	return out, nil
}

// WeekdayCounts counts rows per Release Day in Monday..Sunday order
func WeekdayCounts(ctx context.Context, df *dataframe.DataFrame) ([7]int, error) {
	var out [7]int

	dayIdx, err := catalog.ColumnIndex(df, catalog.DayCol)
	if err != nil {
		return out, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	daySeries := df.Series[dayIdx]

	nRows := df.NRows(dontLock)
	for row := 0; row < nRows; row++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		day, ok := daySeries.Value(row, dontLock).(string)
		if !ok {
			continue
		}
		for ii, name := range WeekdayOrder {
			if day == name {
				out[ii]++
			}
		}
	}

	return out, nil
}

// PivotSeries is one secondary-dimension slice of a month pivot
type PivotSeries struct {
	Name   string      `json:"name"`
	Totals [12]float64 `json:"totals"`
}

// MonthTypePivot sums valueCol jointly by Release Month and typeCol. Every
// series covers the full 1..12 month domain with zero-fill; series are
// ordered by type name ascending.
func MonthTypePivot(ctx context.Context, df *dataframe.DataFrame, typeCol string, valueCol string) ([]PivotSeries, error) {
	typeIdx, err := catalog.ColumnIndex(df, typeCol)
	if err != nil {
		return nil, err
	}
	monthIdx, err := catalog.ColumnIndex(df, catalog.MonthCol)
	if err != nil {
		return nil, err
	}
	valueIdx, err := catalog.ColumnIndex(df, valueCol)
	if err != nil {
		return nil, err
	}

	df.Lock()
	defer df.Unlock()

	dontLock := dataframe.Options{DontLock: true}
	typeSeries := df.Series[typeIdx]
	monthSeries := df.Series[monthIdx]
	valSeries := df.Series[valueIdx]

	totals := map[string]*[12]float64{}

	nRows := df.NRows(dontLock)
	for row := 0; row < nRows; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		typeName, ok := typeSeries.Value(row, dontLock).(string)
		if !ok {
			continue
		}
		month, ok := monthSeries.Value(row, dontLock).(int64)
		if !ok || month < 1 || month > 12 {
			continue
		}

		if _, seen := totals[typeName]; !seen {
			totals[typeName] = &[12]float64{}
		}
		if v, ok := valSeries.Value(row, dontLock).(float64); ok && !math.IsNaN(v) {
			totals[typeName][month-1] += v
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	pivot := make([]PivotSeries, 0, len(names))
	for _, name := range names {
		pivot = append(pivot, PivotSeries{Name: name, Totals: *totals[name]})
	}

	return pivot, nil
}
