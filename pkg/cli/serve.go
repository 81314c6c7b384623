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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mealdb-proxy/pkg/api"
	"github.com/NVIDIA/mealdb-proxy/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the MealDB proxy HTTP API",
		Description: `Serve the /api/meals routes backed by the configured upstream.

Server settings come from the environment (PORT, SHUTDOWN_TIMEOUT_SECONDS,
CORS_ALLOWED_ORIGINS). --port overrides PORT.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP listen port",
				Value:   8080,
				Sources: cli.EnvVars("PORT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.NewConfig()
			if p := cmd.Int("port"); p > 0 {
				cfg.Port = p
			}
			return api.Run(ctx, upstreamConfig(cmd), server.WithConfig(cfg))
		},
	}
}
