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

package mealdb

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/NVIDIA/mealdb-proxy/pkg/defaults"
)

// Environment variables read by ParseConfig. Timeouts are whole seconds.
const (
	EnvAPIURL                = "MEALDB_API_URL"
	EnvTimeoutSeconds        = "MEALDB_TIMEOUT_SECONDS"
	EnvBreakerThreshold      = "MEALDB_BREAKER_THRESHOLD"
	EnvBreakerTimeoutSeconds = "MEALDB_BREAKER_TIMEOUT_SECONDS"
)

// Config holds upstream client settings.
type Config struct {
	// BaseURL is the API root, e.g. https://www.themealdb.com/api/json/v1/1.
	BaseURL string

	// Timeout bounds a single fetch including reading the body.
	Timeout time.Duration

	// BreakerThreshold is the minimum number of requests in a window before
	// the breaker may open. Zero disables the breaker.
	BreakerThreshold int

	// BreakerTimeout is how long the breaker stays open before a probe.
	BreakerTimeout time.Duration
}

// ParseConfig returns defaults overridden by the environment.
// Invalid values are ignored.
func ParseConfig() *Config {
	cfg := &Config{
		BaseURL:          defaults.UpstreamBaseURL,
		Timeout:          defaults.UpstreamTimeout,
		BreakerThreshold: defaults.UpstreamBreakerThreshold,
		BreakerTimeout:   defaults.UpstreamBreakerTimeout,
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.BaseURL = v
	}

	if seconds, ok := envInt(EnvTimeoutSeconds); ok && seconds > 0 {
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	if n, ok := envInt(EnvBreakerThreshold); ok && n >= 0 {
		cfg.BreakerThreshold = n
	}

	if seconds, ok := envInt(EnvBreakerTimeoutSeconds); ok && seconds > 0 {
		cfg.BreakerTimeout = time.Duration(seconds) * time.Second
	}

	return cfg
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
