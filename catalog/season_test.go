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

package catalog_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rocketlaunchr/dataframe-go"
	"github.com/viewlens/viewlens/catalog"
)

var _ = Describe("Season", func() {
	It("is total and fixed over months 1..12", func() {
		expected := map[int]string{
			1: "Winter", 2: "Winter", 3: "Spring", 4: "Spring",
			5: "Spring", 6: "Summer", 7: "Summer", 8: "Summer",
			9: "Fall", 10: "Fall", 11: "Fall", 12: "Winter",
		}
		for month := 1; month <= 12; month++ {
			Expect(catalog.Season(month)).To(Equal(expected[month]))
		}
	})

	It("yields nothing for months outside the calendar", func() {
		Expect(catalog.Season(0)).To(Equal(""))
		Expect(catalog.Season(13)).To(Equal(""))
	})
})

var _ = Describe("WithSeasons", func() {
	It("derives seasons and keeps missing months missing", func() {
		months := dataframe.NewSeriesInt64(catalog.MonthCol, nil, 1, nil, 7)
		df := dataframe.NewDataFrame(months)

		enriched, err := catalog.WithSeasons(context.TODO(), df)
		Expect(err).To(BeNil())

		seasonIdx, err := enriched.NameToColumn(catalog.SeasonCol)
		Expect(err).To(BeNil())
		col := enriched.Series[seasonIdx]
		Expect(col.Value(0)).To(Equal("Winter"))
		Expect(col.Value(1)).To(BeNil())
		Expect(col.Value(2)).To(Equal("Summer"))
	})

	It("fails when the month column has not been derived", func() {
		df := dataframe.NewDataFrame(dataframe.NewSeriesString("Title", nil, "A"))
		_, err := catalog.WithSeasons(context.TODO(), df)
		Expect(err).ToNot(BeNil())
	})
})
