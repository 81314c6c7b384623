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

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/mealdb-proxy/pkg/logging"
	"github.com/NVIDIA/mealdb-proxy/pkg/meal"
	"github.com/NVIDIA/mealdb-proxy/pkg/mealdb"
	"github.com/NVIDIA/mealdb-proxy/pkg/server"
)

const (
	name           = "mealdbd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/mealdb-proxy/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It loads an optional .env file, configures logging, wires the upstream
// client into the meal routes and handles graceful shutdown.
func Serve() error {
	if err := LoadEnvFile(DefaultEnvFile); err != nil {
		return err
	}

	logging.SetDefaultStructuredLogger(name, version)

	return Run(context.Background(), mealdb.ParseConfig())
}

// Run serves the meal API against the upstream described by cfg until ctx
// is cancelled or the process receives SIGINT/SIGTERM. Server options are
// applied before the meal routes are registered.
func Run(ctx context.Context, cfg *mealdb.Config, opts ...server.Option) error {
	if cfg == nil {
		cfg = mealdb.ParseConfig()
	}

	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"upstream", cfg.BaseURL,
	)

	s := NewServer(cfg, opts...)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewServer builds the HTTP server with the meal routes backed by a client
// for cfg.
func NewServer(cfg *mealdb.Config, opts ...server.Option) *server.Server {
	all := make([]server.Option, 0, len(opts)+3)
	all = append(all, opts...)
	all = append(all,
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(cfg)),
	)
	return server.New(all...)
}

// Routes returns the meal routes served by the daemon.
func Routes(cfg *mealdb.Config) map[string]http.HandlerFunc {
	client := mealdb.NewClientFromConfig(cfg)
	return meal.NewHandler(meal.NewService(client)).Routes()
}
