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

// Package api wires the MealDB proxy daemon together.
//
// Usage:
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/mealdb-proxy/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Loading an optional .env file
//   - Configuring structured logging with application name and version
//   - Building the upstream client and meal service
//   - Delegating server lifecycle management to pkg/server
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (CORS, request IDs, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus metrics
//
// # Endpoints
//
// Meal endpoints:
//   - GET /api/meals/health                  - Liveness of the meal API
//   - GET /api/meals/search?name=X           - Meals matching X, fewest ingredients first
//   - GET /api/meals/least-ingredients?name=X - Meal with the fewest ingredients (random without name)
//   - GET /api/meals/random                  - One random meal
//
// System endpoints:
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl 'http://localhost:8080/api/meals/least-ingredients?name=Arrabiata'
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - SHUTDOWN_TIMEOUT_SECONDS: Graceful shutdown window (default: 30)
//   - CORS_ALLOWED_ORIGINS: Comma separated browser origins
//   - MEALDB_API_URL: Upstream base URL
//   - MEALDB_TIMEOUT_SECONDS: Upstream request timeout (default: 10)
//   - MEALDB_BREAKER_THRESHOLD: Requests before the breaker may open, 0 disables
//   - MEALDB_BREAKER_TIMEOUT_SECONDS: Open breaker cool-down (default: 30)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/mealdb-proxy/pkg/api.version=1.0.0'"
package api
