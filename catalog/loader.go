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
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Load reads the dataset at path into a dataframe. Columns are loaded as raw
// strings; typing happens in the cleaning and date-preparation steps. Paths
// beginning with http:// or https:// are fetched and parsed as CSV; a .xlsx
// extension selects the spreadsheet reader, anything else is treated as CSV.
func Load(ctx context.Context, path string) (*dataframe.DataFrame, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return loadRemote(ctx, path)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadSpreadsheet(ctx, path)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return imports.LoadFromCSV(ctx, fh, imports.CSVLoadOptions{})
}

func loadRemote(ctx context.Context, url string) (*dataframe.DataFrame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP request returned invalid status code: %d", resp.StatusCode)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("URL", url).Int("Bytes", len(body)).Msg("fetched remote dataset")
	return imports.LoadFromCSV(ctx, bytes.NewReader(body), imports.CSVLoadOptions{})
}

func loadSpreadsheet(ctx context.Context, path string) (*dataframe.DataFrame, error) {
	fh, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	rows, err := fh.GetRows(fh.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet has no header row: %s", path)
	}

	header := rows[0]
	series := make([]dataframe.Series, len(header))
	for colIdx, colName := range header {
		series[colIdx] = dataframe.NewSeriesString(colName, &dataframe.SeriesInit{Capacity: len(rows) - 1})
	}

	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for colIdx := range header {
			// excelize omits trailing empty cells
			if colIdx < len(row) {
				series[colIdx].Append(row[colIdx])
			} else {
				series[colIdx].Append(nil)
			}
		}
	}

	return dataframe.NewDataFrame(series...), nil
}
