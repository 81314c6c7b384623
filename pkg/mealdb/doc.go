// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package mealdb is the HTTP client for TheMealDB public recipe API.
//
// The client issues single-attempt GET requests against a configured base URL
// and returns the raw JSON body. It never parses the payload; normalization
// lives in package meal.
//
// Every call is bounded by a total timeout, traced with an OpenTelemetry span
// and counted in Prometheus metrics. A circuit breaker sits in front of the
// transport so a failing upstream is reported quickly instead of piling up
// requests. An open breaker surfaces as the same FETCH_FAILED error as any
// other transport failure. There are no retries.
//
// Usage:
//
//	c := mealdb.NewClient("https://www.themealdb.com/api/json/v1/1")
//	body, err := c.Search(ctx, "chicken")
//	if err != nil {
//	    // errors.HasCode(err, errors.ErrCodeFetchFailed) is true
//	}
//
// Configuration from the environment:
//
//	cfg := mealdb.ParseConfig()  // MEALDB_API_URL, MEALDB_TIMEOUT_SECONDS, ...
//	c := mealdb.NewClientFromConfig(cfg)
package mealdb
