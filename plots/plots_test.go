// Copyright 2023-2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plots_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rocketlaunchr/dataframe-go"
	"github.com/viewlens/viewlens/insights"
	"github.com/viewlens/viewlens/plots"
	"github.com/viewlens/viewlens/report"
)

var _ = Describe("Charts", func() {
	buckets := []insights.Bucket{{Key: "Movie", Total: 100.0}, {Key: "Show", Total: 50.0}}

	It("renders a content type bar as standalone HTML", func() {
		buf := &bytes.Buffer{}
		Expect(plots.ContentTypeBar(buckets).Render(buf)).To(BeNil())
		Expect(buf.String()).To(ContainSubstring("Total Viewership Hours by Content Type"))
	})

	It("renders an overlap chart for monthly patterns", func() {
		buf := &bytes.Buffer{}
		var counts [12]int
		var totals [12]float64
		counts[0] = 3
		totals[0] = 42.0
		Expect(plots.MonthlyPatterns(counts, totals).Render(buf)).To(BeNil())
		Expect(buf.String()).To(ContainSubstring("Number of Releases"))
		Expect(buf.String()).To(ContainSubstring("Viewership Hours"))
	})

	Describe("Save", func() {
		var tmpDir string

		BeforeEach(func() {
			var err error
			tmpDir, err = os.MkdirTemp("", "plots")
			Expect(err).To(BeNil())
		})

		AfterEach(func() {
			os.RemoveAll(tmpDir)
		})

		It("writes the chart under the fixed filename scheme", func() {
			path, err := plots.Save(plots.LanguageBar(buckets), tmpDir, "viewership_by_language")
			Expect(err).To(BeNil())
			Expect(path).To(Equal(filepath.Join(tmpDir, "viewership_by_language.html")))

			body, err := os.ReadFile(path)
			Expect(err).To(BeNil())
			Expect(string(body)).To(ContainSubstring("Total Viewership Hours by Language"))
		})
	})
})

var _ = Describe("Dashboard", func() {
	It("splices the summary and tables into the rendered page", func() {
		top := dataframe.NewDataFrame(
			dataframe.NewSeriesString("Title", nil, "Holiday Movie"),
			dataframe.NewSeriesFloat64("Hours Viewed", nil, 1000.0),
		)

		rpt := &report.Report{
			Config: &report.Config{
				TitleColumn:    "Title",
				HoursColumn:    "Hours Viewed",
				LanguageColumn: "Language Indicator",
				ContentColumn:  "Content Type",
				DateColumn:     "Release Date",
			},
			Rows:        1,
			Columns:     []string{"Title", "Hours Viewed"},
			ContentType: []insights.Bucket{{Key: "Movie", Total: 1000.0}},
			Top:         top,
			Warnings:    []string{"skipping language viewership: column \"Language Indicator\" missing"},
		}

		buf, err := plots.Dashboard(rpt)
		Expect(err).To(BeNil())

		body := buf.String()
		Expect(body).To(ContainSubstring("Content Strategy Analysis Dashboard"))
		Expect(body).To(ContainSubstring("Data Summary"))
		Expect(body).To(ContainSubstring("Loaded data: 1 rows, 2 columns"))
		Expect(body).To(ContainSubstring("Top Titles"))
		Expect(body).To(ContainSubstring("Holiday Movie"))
		Expect(body).To(ContainSubstring("Warnings"))

		// skipped sections never leave empty chart shells behind
		Expect(body).ToNot(ContainSubstring("Total Viewership Hours by Language"))
	})
})
