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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mealdb-proxy/pkg/meal"
	"github.com/NVIDIA/mealdb-proxy/pkg/mealdb"
	"github.com/NVIDIA/mealdb-proxy/pkg/serializer"
)

func nameFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "name",
		Aliases: []string{"n"},
		Usage:   "Meal name to search for",
	}
}

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search meals by name, fewest ingredients first",
		Flags: []cli.Flag{
			nameFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			term := strings.TrimSpace(cmd.String("name"))
			if term == "" {
				return fmt.Errorf("--name is required")
			}

			meals, err := newService(cmd).Search(ctx, term)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if len(meals) == 0 {
				return notFound(cmd, "No meals found for: "+term)
			}

			return write(ctx, cmd, meals)
		},
	}
}

func leastCmd() *cli.Command {
	return &cli.Command{
		Name:  "least",
		Usage: "Show the meal with the fewest ingredients (random meal without --name)",
		Flags: []cli.Flag{
			nameFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc := newService(cmd)

			term := strings.TrimSpace(cmd.String("name"))
			if term == "" {
				m, found, err := svc.Random(ctx)
				if err != nil {
					return fmt.Errorf("random meal failed: %w", err)
				}
				if !found {
					return notFound(cmd, "Could not fetch meal")
				}
				return write(ctx, cmd, m)
			}

			m, found, err := svc.LeastIngredients(ctx, term)
			if err != nil {
				return fmt.Errorf("least ingredients failed: %w", err)
			}
			if !found {
				return notFound(cmd, "No meals found for: "+term)
			}
			return write(ctx, cmd, m)
		},
	}
}

func randomCmd() *cli.Command {
	return &cli.Command{
		Name:  "random",
		Usage: "Show a random meal",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, found, err := newService(cmd).Random(ctx)
			if err != nil {
				return fmt.Errorf("random meal failed: %w", err)
			}
			if !found {
				return notFound(cmd, "Could not fetch random meal")
			}
			return write(ctx, cmd, m)
		},
	}
}

// newService builds a one-shot service. The breaker is off since a CLI
// invocation makes a single request.
func newService(cmd *cli.Command) *meal.Service {
	client := mealdb.NewClientFromConfig(upstreamConfig(cmd), mealdb.WithBreaker(0, 0))
	return meal.NewService(client)
}

func notFound(cmd *cli.Command, message string) error {
	fmt.Fprintln(cmd.Root().ErrWriter, message)
	return nil
}

func write(ctx context.Context, cmd *cli.Command, data any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := newOutputWriter(cmd, format)
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, data)
}
