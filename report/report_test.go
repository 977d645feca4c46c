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

package report_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/viewlens/viewlens/catalog"
	"github.com/viewlens/viewlens/insights"
	"github.com/viewlens/viewlens/report"
)

var _ = Describe("Build", func() {
	var (
		tmpDir string
		cfg    *report.Config
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "report")
		Expect(err).To(BeNil())

		cfg = &report.Config{
			File:           filepath.Join(tmpDir, "content.csv"),
			HoursColumn:    "Hours Viewed",
			DateColumn:     "Release Date",
			LanguageColumn: "Language Indicator",
			ContentColumn:  "Content Type",
			TitleColumn:    "Title",
			TopN:           2,
			HolidayDates:   insights.DefaultHolidays(),
			HolidayWindow:  3,
		}
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	writeDataset := func(body string) {
		Expect(os.WriteFile(cfg.File, []byte(body), 0644)).To(BeNil())
	}

	Context("with a complete dataset", func() {
		BeforeEach(func() {
			writeDataset("Title,Hours Viewed,Release Date,Content Type,Language Indicator\n" +
				"Holiday Movie,\"1,000\",2023-12-24,Movie,English\n" +
				"Summer Show,500,2023-07-15,Show,Korean\n" +
				"Mystery,abc,2023-07-20,Movie,English\n")
		})

		It("computes every section", func() {
			rpt, err := report.Build(context.TODO(), cfg)
			Expect(err).To(BeNil())

			Expect(rpt.Rows).To(Equal(3))
			Expect(rpt.MissingHours).To(Equal(1))
			Expect(rpt.MissingDates).To(BeZero())

			Expect(rpt.ContentType).To(Equal([]insights.Bucket{
				{Key: "Movie", Total: 1000.0},
				{Key: "Show", Total: 500.0},
			}))
			Expect(rpt.Language[0].Key).To(Equal("English"))

			Expect(rpt.MonthlySum[11]).To(Equal(1000.0)) // December
			Expect(rpt.MonthlySum[6]).To(Equal(500.0))   // July
			Expect(rpt.MonthlyCounts[6]).To(Equal(2))

			Expect(rpt.Seasonal).ToNot(BeNil())
			Expect(rpt.Seasonal[0]).To(Equal(1000.0)) // Winter
			Expect(rpt.Seasonal[2]).To(Equal(500.0))  // Summer

			Expect(rpt.Holiday).ToNot(BeNil())
			Expect(rpt.Holiday.NRows()).To(Equal(1))

			Expect(rpt.Top).ToNot(BeNil())
			Expect(rpt.Top.NRows()).To(Equal(2))
			Expect(rpt.TopColumns()).To(Equal([]string{"Title", "Hours Viewed", "Language Indicator", "Content Type", "Release Date"}))

			Expect(rpt.TotalHours()).To(Equal(1500.0))
			Expect(rpt.Generated).To(BeTemporally("~", time.Now(), time.Minute))
		})
	})

	Context("with optional columns missing", func() {
		BeforeEach(func() {
			writeDataset("Title,Hours Viewed,Release Date\n" +
				"Solo,100,2023-03-01\n")
		})

		It("skips the affected sections with warnings", func() {
			rpt, err := report.Build(context.TODO(), cfg)
			Expect(err).To(BeNil())

			Expect(rpt.ContentType).To(BeNil())
			Expect(rpt.Language).To(BeNil())
			Expect(rpt.Pivot).To(BeNil())
			Expect(rpt.Warnings).ToNot(BeEmpty())

			// mandatory sections still computed
			Expect(rpt.MonthlySum[2]).To(Equal(100.0))
			Expect(rpt.Top.NRows()).To(Equal(1))
		})
	})

	Context("with no holiday matches", func() {
		BeforeEach(func() {
			writeDataset("Title,Hours Viewed,Release Date\n" +
				"Spring Show,100,2023-04-20\n")
		})

		It("reports the empty result without failing", func() {
			rpt, err := report.Build(context.TODO(), cfg)
			Expect(err).To(BeNil())
			Expect(rpt.Holiday).ToNot(BeNil())
			Expect(rpt.Holiday.NRows()).To(BeZero())
			Expect(rpt.Warnings).To(ContainElement(ContainSubstring("no releases found")))
		})
	})

	Context("with a missing dataset", func() {
		It("fails with ErrNotFound", func() {
			cfg.File = filepath.Join(tmpDir, "nope.csv")
			_, err := report.Build(context.TODO(), cfg)
			Expect(errors.Is(err, catalog.ErrNotFound)).To(BeTrue())
		})
	})

	Context("with the hours column missing", func() {
		BeforeEach(func() {
			writeDataset("Title,Release Date\nSolo,2023-03-01\n")
		})

		It("fails the run", func() {
			_, err := report.Build(context.TODO(), cfg)
			var colErr *catalog.ColumnNotFoundError
			Expect(errors.As(err, &colErr)).To(BeTrue())
			Expect(colErr.Column).To(Equal("Hours Viewed"))
		})
	})
})

var _ = Describe("NewConfigFromViper", func() {
	It("applies the documented defaults", func() {
		cfg := report.NewConfigFromViper()
		Expect(cfg.HoursColumn).To(Equal("Hours Viewed"))
		Expect(cfg.DateColumn).To(Equal("Release Date"))
		Expect(cfg.LanguageColumn).To(Equal("Language Indicator"))
		Expect(cfg.ContentColumn).To(Equal("Content Type"))
		Expect(cfg.HolidayWindow).To(Equal(3))
		Expect(cfg.HolidayDates).To(HaveLen(5))
	})
})
