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
	"errors"
	"fmt"
	"strings"

	"github.com/rocketlaunchr/dataframe-go"
)

var (
	ErrNotFound = errors.New("dataset not found")
)

// ColumnNotFoundError indicates that a named column is absent from the table.
// It is fatal for the two mandatory preprocessing steps (hours cleaning and
// date parsing); every downstream aggregate treats it as "section
// unavailable" and skips with a warning.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found; available columns: %s", e.Column, strings.Join(e.Available, ", "))
}

// ColumnIndex returns the index of the named column or a ColumnNotFoundError
func ColumnIndex(df *dataframe.DataFrame, name string) (int, error) {
	names := df.Names()
	for idx, colName := range names {
		if colName == name {
			return idx, nil
		}
	}
	return -1, &ColumnNotFoundError{Column: name, Available: names}
}
