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

package meal

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
)

const (
	opSearch           = "search"
	opLeastIngredients = "least_ingredients"
	opRandom           = "random"
)

// Upstream fetches raw JSON payloads from the recipe database.
type Upstream interface {
	Search(ctx context.Context, term string) ([]byte, error)
	Random(ctx context.Context) ([]byte, error)
}

// Service turns upstream payloads into normalized meals. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	upstream Upstream
}

// NewService returns a Service backed by upstream.
func NewService(upstream Upstream) *Service {
	return &Service{upstream: upstream}
}

// Search returns all meals matching term, sorted ascending by ingredient
// count. Meals with equal counts keep their upstream order. No match yields
// an empty slice and a nil error.
func (s *Service) Search(ctx context.Context, term string) ([]Meal, error) {
	meals, err := s.search(ctx, term)
	switch {
	case err != nil:
		observe(opSearch, Classify(err))
	case len(meals) == 0:
		observe(opSearch, OutcomeEmpty)
	default:
		observe(opSearch, OutcomeSuccess)
	}
	return meals, err
}

// LeastIngredients returns the meal with the fewest ingredients among those
// matching term. found is false when nothing matched.
func (s *Service) LeastIngredients(ctx context.Context, term string) (Meal, bool, error) {
	meals, err := s.search(ctx, term)
	if err != nil {
		observe(opLeastIngredients, Classify(err))
		return Meal{}, false, err
	}
	if len(meals) == 0 {
		observe(opLeastIngredients, OutcomeNotFound)
		return Meal{}, false, nil
	}
	observe(opLeastIngredients, OutcomeSuccess)
	return meals[0], true, nil
}

// Random returns one random meal. found is false when upstream returned no
// meal.
func (s *Service) Random(ctx context.Context) (Meal, bool, error) {
	body, err := s.upstream.Random(ctx)
	if err != nil {
		observe(opRandom, Classify(err))
		return Meal{}, false, err
	}

	m, found, err := ParseFirst(body)
	switch {
	case err != nil:
		slog.Warn("malformed random meal payload", "error", err)
		observe(opRandom, Classify(err))
	case !found:
		observe(opRandom, OutcomeNotFound)
	default:
		slog.Debug("random meal", "id", m.ID, "ingredients", m.IngredientCount())
		observe(opRandom, OutcomeSuccess)
	}
	return m, found, err
}

func (s *Service) search(ctx context.Context, term string) ([]Meal, error) {
	body, err := s.upstream.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	meals, err := ParseMeals(body)
	if err != nil {
		slog.Warn("malformed search payload", "term", term, "error", err)
		return nil, err
	}

	sortByIngredientCount(meals)
	mealSearchResults.Observe(float64(len(meals)))
	slog.Debug("search results", "term", term, "count", len(meals))
	return meals, nil
}

// sortByIngredientCount orders meals ascending by ingredient count.
// The sort is stable.
func sortByIngredientCount(meals []Meal) {
	slices.SortStableFunc(meals, func(a, b Meal) int {
		return cmp.Compare(a.IngredientCount(), b.IngredientCount())
	})
}

func observe(op string, o Outcome) {
	mealOutcomes.WithLabelValues(op, string(o)).Inc()
}
