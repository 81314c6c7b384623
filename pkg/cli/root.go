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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mealdb-proxy/pkg/api"
	"github.com/NVIDIA/mealdb-proxy/pkg/defaults"
	"github.com/NVIDIA/mealdb-proxy/pkg/logging"
	"github.com/NVIDIA/mealdb-proxy/pkg/mealdb"
	"github.com/NVIDIA/mealdb-proxy/pkg/serializer"
)

const (
	name           = "mealdb"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

// Execute runs the CLI with the process arguments and exits non-zero on error.
// This is called by main.main().
func Execute() {
	if err := api.LoadEnvFile(api.DefaultEnvFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Query TheMealDB and serve the MealDB proxy API",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Search TheMealDB recipe database from the command line.

Results are normalized: ingredients are listed in order without blanks and
meals are sorted by how many ingredients they need.

  mealdb search --name chicken --format table
  mealdb least --name pie
  mealdb random --format yaml
  mealdb serve`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "TheMealDB API base URL",
				Value:   defaults.UpstreamBaseURL,
				Sources: cli.EnvVars(mealdb.EnvAPIURL),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: fmt.Sprintf("Upstream request timeout (default: %s, or %s seconds)", defaults.UpstreamTimeout, mealdb.EnvTimeoutSeconds),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
			)
			return ctx, nil
		},
		Commands: []*cli.Command{
			searchCmd(),
			leastCmd(),
			randomCmd(),
			serveCmd(),
		},
	}
}

// upstreamConfig builds the upstream settings from the environment and the
// global flags. Flags win only when given explicitly.
func upstreamConfig(cmd *cli.Command) *mealdb.Config {
	cfg := mealdb.ParseConfig()
	if u := cmd.String("api-url"); u != "" {
		cfg.BaseURL = u
	}
	if d := cmd.Duration("timeout"); cmd.IsSet("timeout") && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// newOutputWriter writes to --output when set, else to the command's writer.
func newOutputWriter(cmd *cli.Command, format serializer.Format) serializer.Serializer {
	if path := cmd.String("output"); path != "" {
		return serializer.NewFileWriterOrStdout(format, path)
	}
	return serializer.NewWriter(format, cmd.Root().Writer)
}
