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
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/rocketlaunchr/dataframe-go"
	"github.com/viewlens/viewlens/report"
)

// Dashboard renders every available section of the report as a single HTML
// page: charts, the top-N table, holiday releases and any inline warnings.
// Sections the report skipped are omitted, mirroring the batch behavior.
func Dashboard(rpt *report.Report) (*bytes.Buffer, error) {
	page := components.NewPage()
	page.PageTitle = "Content Strategy Analysis Dashboard"

	if rpt.ContentType != nil {
		page.AddCharts(ContentTypeBar(rpt.ContentType))
	}
	if rpt.Language != nil {
		page.AddCharts(LanguageBar(rpt.Language))
	}
	page.AddCharts(MonthlyLine(rpt.MonthlySum))
	if rpt.Pivot != nil {
		page.AddCharts(MonthTypeLines(rpt.Pivot))
	}
	if rpt.Seasonal != nil {
		page.AddCharts(SeasonalBar(*rpt.Seasonal))
	}
	page.AddCharts(MonthlyPatterns(rpt.MonthlyCounts, rpt.MonthlySum))
	page.AddCharts(WeekdayPatterns(rpt.WeekdayCounts, rpt.WeekdaySum))

	buf := &bytes.Buffer{}
	if err := page.Render(buf); err != nil {
		return nil, err
	}

	// go-echarts pages only carry charts; splice the summary, warnings and
	// tables in before the closing body tag
	extra := &strings.Builder{}
	writeSummary(extra, rpt)
	writeWarnings(extra, rpt.Warnings)
	if rpt.Top != nil && rpt.Top.NRows() > 0 {
		writeTable(extra, "Top Titles", rpt.Top, rpt.TopColumns())
	}
	if rpt.Holiday != nil && rpt.Holiday.NRows() > 0 {
		writeTable(extra, "Holiday Releases", rpt.Holiday, rpt.Holiday.Names())
	}

	out := strings.Replace(buf.String(), "</body>", extra.String()+"</body>", 1)
	return bytes.NewBufferString(out), nil
}

func writeSummary(w *strings.Builder, rpt *report.Report) {
	w.WriteString(`<div style="margin:20px"><h2>Data Summary</h2>`)
	fmt.Fprintf(w, "<p>Loaded data: %d rows, %d columns</p>", rpt.Rows, len(rpt.Columns))
	fmt.Fprintf(w, "<p>Columns available: %s</p>", html.EscapeString(strings.Join(rpt.Columns, ", ")))
	if rpt.MissingHours > 0 {
		fmt.Fprintf(w, "<p>%d rows have missing viewership hours after cleaning.</p>", rpt.MissingHours)
	}
	if rpt.MissingDates > 0 {
		fmt.Fprintf(w, "<p>%d rows have invalid or missing release dates.</p>", rpt.MissingDates)
	}
	w.WriteString("</div>")
}

func writeWarnings(w *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	w.WriteString(`<div style="margin:20px;color:#b45309"><h3>Warnings</h3><ul>`)
	for _, warning := range warnings {
		fmt.Fprintf(w, "<li>%s</li>", html.EscapeString(warning))
	}
	w.WriteString("</ul></div>")
}

func writeTable(w *strings.Builder, title string, df *dataframe.DataFrame, cols []string) {
	colIdx := map[string]int{}
	for idx, name := range df.Names() {
		colIdx[name] = idx
	}

	fmt.Fprintf(w, `<div style="margin:20px"><h2>%s</h2><table border="1" cellpadding="4" cellspacing="0"><tr>`, html.EscapeString(title))
	for _, name := range cols {
		fmt.Fprintf(w, "<th>%s</th>", html.EscapeString(name))
	}
	w.WriteString("</tr>")

	nRows := df.NRows()
	for row := 0; row < nRows; row++ {
		w.WriteString("<tr>")
		for _, name := range cols {
			val := df.Series[colIdx[name]].Value(row)
			fmt.Fprintf(w, "<td>%s</td>", html.EscapeString(formatCell(val)))
		}
		w.WriteString("</tr>")
	}
	w.WriteString("</table></div>")
}

func formatCell(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return formatHours(v)
	case int64:
		return fmt.Sprintf("%d", v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
