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

// Package server hosts the HTTP surface of the MealDB proxy: routing,
// middleware, structured error responses, and health/readiness/metrics
// endpoints. Domain handlers are supplied by the caller via WithHandler.
//
// # Architecture
//
// Every API route is wrapped in the same middleware chain, outermost first:
//
//   - metrics: RED metrics per route pattern (prometheus client_golang)
//   - version: Accept-header negotiation, X-API-Version response header
//   - request ID: X-Request-Id propagation, UUID generated when absent or invalid
//   - panic recovery: 500 ErrorResponse instead of a dropped connection
//   - CORS: origin allow-list, preflight answered with 204
//   - logging: structured request logs via slog
//
// System endpoints (/health, /ready, /metrics) bypass the chain.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("mealdb-api"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/api/meals/search": h.HandleSearch,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// NewConfig reads:
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//	CORS_ALLOWED_ORIGINS      comma separated origins, "*" for any
//	                          (default http://localhost:3000,http://localhost:5173)
//
// # Errors
//
// Failures are rendered as ErrorResponse:
//
//	{
//	  "code": "FETCH_FAILED",
//	  "message": "upstream request failed",
//	  "details": {"error": "..."},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-15T10:30:00Z",
//	  "retryable": true
//	}
//
// WriteErrorFromErr derives status and retryability from the structured
// error code (see HTTPStatusFromCode).
package server
