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

// Package cli implements the mealdb command-line tool.
//
// # Commands
//
//	mealdb search --name <term>   Meals matching term, fewest ingredients first
//	mealdb least [--name <term>]  Meal with the fewest ingredients, random without a term
//	mealdb random                 One random meal
//	mealdb serve [--port N]       Run the HTTP API (same as mealdbd)
//
// # Global Flags
//
//	--api-url    Upstream base URL (env MEALDB_API_URL)
//	--timeout    Upstream request timeout
//	--log-level  debug, info, warn or error (env LOG_LEVEL)
//
// Query commands accept --output to write to a file and --format to choose
// json, yaml or table output.
//
// # Exit Status
//
// A search that matches nothing, or a lookup that finds no meal, prints a
// message to stderr and exits 0. Upstream and parsing failures exit 1.
//
// An optional .env file in the working directory is loaded before flags are
// parsed, so its values feed the environment-backed flags.
package cli
