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

package insights_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rocketlaunchr/dataframe-go"
	"github.com/viewlens/viewlens/catalog"
	"github.com/viewlens/viewlens/insights"
)

var _ = Describe("TopTitles", func() {
	var df *dataframe.DataFrame

	BeforeEach(func() {
		titles := dataframe.NewSeriesString("Title", nil, "A", "B", "C", "D", "E")
		hours := dataframe.NewSeriesFloat64("Hours Viewed", nil, 10.0, 50.0, 30.0, math.NaN(), 50.0)
		df = dataframe.NewDataFrame(titles, hours)
	})

	It("returns the n largest rows in descending order", func() {
		top, err := insights.TopTitles(context.TODO(), df, "Hours Viewed", 3)
		Expect(err).To(BeNil())
		Expect(top.NRows()).To(Equal(3))

		titleIdx, err := top.NameToColumn("Title")
		Expect(err).To(BeNil())
		col := top.Series[titleIdx]
		// B and E tie at 50; B comes first by original row order
		Expect(col.Value(0)).To(Equal("B"))
		Expect(col.Value(1)).To(Equal("E"))
		Expect(col.Value(2)).To(Equal("C"))
	})

	It("never selects rows with a missing metric", func() {
		top, err := insights.TopTitles(context.TODO(), df, "Hours Viewed", 10)
		Expect(err).To(BeNil())
		Expect(top.NRows()).To(Equal(4))
	})

	It("returns fewer rows when the table is small", func() {
		small := dataframe.NewDataFrame(
			dataframe.NewSeriesString("Title", nil, "Only"),
			dataframe.NewSeriesFloat64("Hours Viewed", nil, 1.0),
		)
		top, err := insights.TopTitles(context.TODO(), small, "Hours Viewed", 5)
		Expect(err).To(BeNil())
		Expect(top.NRows()).To(Equal(1))
	})

	It("returns a ColumnNotFoundError when the metric is absent", func() {
		noHours := dataframe.NewDataFrame(dataframe.NewSeriesString("Title", nil, "A"))
		_, err := insights.TopTitles(context.TODO(), noHours, "Hours Viewed", 5)
		var colErr *catalog.ColumnNotFoundError
		Expect(errors.As(err, &colErr)).To(BeTrue())
	})
})
