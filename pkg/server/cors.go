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

package server

import (
	"net/http"
	"slices"
	"strings"
)

var (
	corsAllowedMethods = strings.Join([]string{http.MethodGet, http.MethodOptions}, ", ")
	corsAllowedHeaders = "Content-Type, Accept, X-Request-Id"
	corsExposedHeaders = "X-Request-Id, X-API-Version"
)

// allowOrigin reports whether origin may call the API.
func (s *Server) allowOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	return slices.Contains(s.config.AllowedOrigins, "*") ||
		slices.Contains(s.config.AllowedOrigins, origin)
}

// corsMiddleware answers preflight requests and decorates responses for
// allowed browser origins. Requests without an Origin header pass through.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		w.Header().Add("Vary", "Origin")

		allowed := s.allowOrigin(origin)
		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Expose-Headers", corsExposedHeaders)
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			if !allowed {
				WriteError(w, r, http.StatusForbidden, ErrCodeInvalidRequest,
					"Origin not allowed", false, map[string]any{
						"origin": origin,
					})
				return
			}
			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			w.Header().Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	}
}
