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

package common

import (
	"encoding/hex"
	"io"
	"os"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/zeebo/blake3"
)

var cache *lru.Cache

// SetupCache initializes the in-process LRU used to hold rendered dashboard
// pages between dataset refreshes
func SetupCache() {
	var err error
	size := viper.GetInt("cache.local_size")
	if size == 0 {
		size = 16
	}
	cache, err = lru.New(size)
	if err != nil {
		log.Error().Err(err).Msg("could not create LRU cache")
		os.Exit(1)
	}
}

func CacheSet(key string, val []byte) {
	if cache == nil {
		return
	}
	cache.Add(key, val)
}

func CacheGet(key string) ([]byte, bool) {
	if cache == nil {
		return nil, false
	}
	val, ok := cache.Get(key)
	if !ok {
		return nil, false
	}
	return val.([]byte), true
}

// FileFingerprint returns the blake3 hash of the file's contents. An empty
// string is returned when the path cannot be read (e.g. remote URLs); callers
// treat that as "always stale".
func FileFingerprint(path string) string {
	fh, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer fh.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, fh); err != nil {
		log.Warn().Err(err).Str("Path", path).Msg("could not fingerprint dataset")
		return ""
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
