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

package plots

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/viewlens/viewlens/catalog"
	"github.com/viewlens/viewlens/insights"
)

// Renderer is any chart that can write itself as a standalone HTML document
type Renderer interface {
	Render(w io.Writer) error
}

var monthLabels = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}

// ContentTypeBar charts total viewership hours per content type
func ContentTypeBar(buckets []insights.Bucket) *charts.Bar {
	return bucketBar("Total Viewership Hours by Content Type", "Content Type", buckets)
}

// LanguageBar charts total viewership hours per language
func LanguageBar(buckets []insights.Bucket) *charts.Bar {
	return bucketBar("Total Viewership Hours by Language", "Language", buckets)
}

func bucketBar(title string, xName string, buckets []insights.Bucket) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Hours Viewed"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	xs := make([]string, 0, len(buckets))
	data := make([]opts.BarData, 0, len(buckets))
	for _, bucket := range buckets {
		xs = append(xs, bucket.Key)
		data = append(data, opts.BarData{Value: bucket.Total})
	}
	bar.SetXAxis(xs).AddSeries("Hours Viewed", data)

	return bar
}

// MonthlyLine charts total viewership hours across the 1..12 month domain
func MonthlyLine(totals [12]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Total Viewership Hours by Release Month"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Hours Viewed"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	data := make([]opts.LineData, 0, len(totals))
	for _, v := range totals {
		data = append(data, opts.LineData{Value: v})
	}
	line.SetXAxis(monthLabels).AddSeries("Hours Viewed", data)

	return line
}

// MonthTypeLines charts one viewership line per content type across months
func MonthTypeLines(pivot []insights.PivotSeries) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Viewership Trends by Content Type and Release Month"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Hours Viewed"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	line.SetXAxis(monthLabels)
	for _, series := range pivot {
		data := make([]opts.LineData, 0, len(series.Totals))
		for _, v := range series.Totals {
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(series.Name, data)
	}

	return line
}

// SeasonalBar charts total viewership hours per season in fixed season order
func SeasonalBar(totals [4]float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Total Viewership Hours by Release Season"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Season"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Hours Viewed"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	data := make([]opts.BarData, 0, len(totals))
	for _, v := range totals {
		data = append(data, opts.BarData{Value: v})
	}
	bar.SetXAxis(catalog.SeasonOrder).AddSeries("Hours Viewed", data)

	return bar
}

// MonthlyPatterns overlays release counts (bars) with viewership hours
// (line) per month
func MonthlyPatterns(counts [12]int, totals [12]float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Monthly Release Patterns and Viewership Hours"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	barData := make([]opts.BarData, 0, len(counts))
	for _, v := range counts {
		barData = append(barData, opts.BarData{Value: v})
	}
	bar.SetXAxis(monthLabels).AddSeries("Number of Releases", barData)

	line := charts.NewLine()
	lineData := make([]opts.LineData, 0, len(totals))
	for _, v := range totals {
		lineData = append(lineData, opts.LineData{Value: v})
	}
	line.SetXAxis(monthLabels).AddSeries("Viewership Hours", lineData)
	bar.Overlap(line)

	return bar
}

// WeekdayPatterns overlays release counts with viewership hours per weekday
// in Monday..Sunday order
func WeekdayPatterns(counts [7]int, totals [7]float64) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Weekly Release Patterns and Viewership Hours"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day of Week"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	barData := make([]opts.BarData, 0, len(counts))
	for _, v := range counts {
		barData = append(barData, opts.BarData{Value: v})
	}
	bar.SetXAxis(insights.WeekdayOrder).AddSeries("Number of Releases", barData)

	line := charts.NewLine()
	lineData := make([]opts.LineData, 0, len(totals))
	for _, v := range totals {
		lineData = append(lineData, opts.LineData{Value: v})
	}
	line.SetXAxis(insights.WeekdayOrder).AddSeries("Viewership Hours", lineData)
	bar.Overlap(line)

	return bar
}

// Save writes the chart as <outputDir>/<name>.html and returns the path
func Save(chart Renderer, outputDir string, name string) (string, error) {
	path := filepath.Join(outputDir, name+".html")

	fh, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer fh.Close()

	if err := chart.Render(fh); err != nil {
		return "", err
	}
	return path, nil
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
