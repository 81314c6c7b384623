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

// Package meal normalizes TheMealDB payloads and serves the meal HTTP routes.
//
// Upstream meal objects carry twenty numbered ingredient and measure fields
// and many nullable strings. Parsing compacts the ingredient slots into an
// ordered list, trims names and measures, and maps absent or null optional
// fields to nil. Required fields that are missing fail the whole payload
// with MALFORMED_UPSTREAM_DATA.
//
// # Operations
//
//	svc := meal.NewService(mealdb.NewClient(baseURL))
//	meals, err := svc.Search(ctx, "chicken")          // sorted by ingredient count
//	m, found, err := svc.LeastIngredients(ctx, "pie") // first of the sorted search
//	m, found, err := svc.Random(ctx)
//
// An empty search and a not-found lookup are not errors. Errors are classified
// with Classify into OutcomeMalformed or OutcomeFetchFailure.
//
// # HTTP
//
// Handler.Routes registers the routes under /api/meals:
//
//	GET /api/meals/health
//	GET /api/meals/search?name=X
//	GET /api/meals/least-ingredients[?name=X]
//	GET /api/meals/random
//
// Successful and empty answers share the envelope
// {"success": bool, "message": string, "data": any}. Failures are written as
// server.ErrorResponse with HTTP 502.
package meal
