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
	"errors"
	"os"
	"path/filepath"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/viewlens/viewlens/catalog"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("Load", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "catalog")
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Context("with a missing file", func() {
		It("returns ErrNotFound", func() {
			_, err := catalog.Load(context.TODO(), filepath.Join(tmpDir, "nope.csv"))
			Expect(errors.Is(err, catalog.ErrNotFound)).To(BeTrue())
		})
	})

	Context("with a CSV file", func() {
		It("loads rows with string columns", func() {
			path := filepath.Join(tmpDir, "content.csv")
			err := os.WriteFile(path, []byte("Title,Hours Viewed\nShow One,\"1,000\"\nShow Two,500\n"), 0644)
			Expect(err).To(BeNil())

			df, err := catalog.Load(context.TODO(), path)
			Expect(err).To(BeNil())
			Expect(df.NRows()).To(Equal(2))
			Expect(df.Names()).To(ContainElements("Title", "Hours Viewed"))

			colIdx, err := df.NameToColumn("Hours Viewed")
			Expect(err).To(BeNil())
			Expect(df.Series[colIdx].Value(0)).To(Equal("1,000"))
		})
	})

	Context("with a spreadsheet", func() {
		It("loads the first sheet with a header row", func() {
			path := filepath.Join(tmpDir, "content.xlsx")
			fh := excelize.NewFile()
			Expect(fh.SetSheetRow("Sheet1", "A1", &[]interface{}{"Title", "Hours Viewed"})).To(BeNil())
			Expect(fh.SetSheetRow("Sheet1", "A2", &[]interface{}{"Show One", "1,000"})).To(BeNil())
			Expect(fh.SaveAs(path)).To(BeNil())

			df, err := catalog.Load(context.TODO(), path)
			Expect(err).To(BeNil())
			Expect(df.NRows()).To(Equal(1))

			colIdx, err := df.NameToColumn("Title")
			Expect(err).To(BeNil())
			Expect(df.Series[colIdx].Value(0)).To(Equal("Show One"))
		})
	})

	Context("with a remote dataset", func() {
		BeforeEach(func() {
			httpmock.Activate()
		})

		AfterEach(func() {
			httpmock.DeactivateAndReset()
		})

		It("fetches and parses CSV over HTTP", func() {
			httpmock.RegisterResponder("GET", "https://example.com/content.csv",
				httpmock.NewStringResponder(200, "Title,Hours Viewed\nShow One,100\n"))

			df, err := catalog.Load(context.TODO(), "https://example.com/content.csv")
			Expect(err).To(BeNil())
			Expect(df.NRows()).To(Equal(1))
		})

		It("maps 404 responses to ErrNotFound", func() {
			httpmock.RegisterResponder("GET", "https://example.com/gone.csv",
				httpmock.NewStringResponder(404, "not found"))

			_, err := catalog.Load(context.TODO(), "https://example.com/gone.csv")
			Expect(errors.Is(err, catalog.ErrNotFound)).To(BeTrue())
		})
	})
})
