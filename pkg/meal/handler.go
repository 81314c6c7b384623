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
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/NVIDIA/mealdb-proxy/pkg/defaults"
	cnserrors "github.com/NVIDIA/mealdb-proxy/pkg/errors"
	"github.com/NVIDIA/mealdb-proxy/pkg/serializer"
	"github.com/NVIDIA/mealdb-proxy/pkg/server"
)

// BasePath is the prefix of all meal routes.
const BasePath = "/api/meals"

const (
	healthMessage  = "MealDB Backend is running!"
	successMessage = "Success"
)

// Response is the envelope of every meal route answer that is not an error.
type Response struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
	Data    any    `json:"data" yaml:"data"`
}

// Finder is the set of meal queries the HTTP handlers serve.
type Finder interface {
	Search(ctx context.Context, term string) ([]Meal, error)
	LeastIngredients(ctx context.Context, term string) (Meal, bool, error)
	Random(ctx context.Context) (Meal, bool, error)
}

// Handler serves the meal routes.
type Handler struct {
	finder Finder
}

// NewHandler returns a Handler answering from finder.
func NewHandler(finder Finder) *Handler {
	return &Handler{finder: finder}
}

// Routes returns the meal routes keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		BasePath + "/health":            h.HandleHealth,
		BasePath + "/search":            h.HandleSearch,
		BasePath + "/least-ingredients": h.HandleLeastIngredients,
		BasePath + "/random":            h.HandleRandom,
	}
}

// HandleHealth reports liveness of the meal API.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: healthMessage,
		Data:    "OK",
	})
}

// HandleSearch serves GET /api/meals/search?name=X.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
			"Query parameter 'name' is required", false, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.MealHandlerTimeout)
	defer cancel()

	slog.Info("searching meals", "name", name, "requestID", server.RequestID(ctx))

	meals, err := h.finder.Search(ctx, name)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to search meals", map[string]any{"name": name})
		return
	}

	if len(meals) == 0 {
		respondMeal(w, notFound("No meals found for: "+name))
		return
	}

	respondMeal(w, found(meals))
}

// HandleLeastIngredients serves GET /api/meals/least-ingredients[?name=X].
// Without a name it answers with a random meal.
func (h *Handler) HandleLeastIngredients(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.MealHandlerTimeout)
	defer cancel()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	slog.Info("fetching meal with least ingredients", "name", name, "requestID", server.RequestID(ctx))

	if name == "" {
		m, ok, err := h.finder.Random(ctx)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "Failed to fetch meal", nil)
			return
		}
		if !ok {
			respondMeal(w, notFound("Could not fetch meal"))
			return
		}
		respondMeal(w, found(m))
		return
	}

	m, ok, err := h.finder.LeastIngredients(ctx, name)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to fetch meal", map[string]any{"name": name})
		return
	}
	if !ok {
		respondMeal(w, notFound("No meals found for: "+name))
		return
	}
	respondMeal(w, found(m))
}

// HandleRandom serves GET /api/meals/random.
func (h *Handler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.MealHandlerTimeout)
	defer cancel()

	slog.Info("fetching random meal", "requestID", server.RequestID(ctx))

	m, ok, err := h.finder.Random(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to fetch random meal", nil)
		return
	}
	if !ok {
		respondMeal(w, notFound("Could not fetch random meal"))
		return
	}
	respondMeal(w, found(m))
}

func found(data any) Response {
	return Response{Success: true, Message: successMessage, Data: data}
}

func notFound(message string) Response {
	return Response{Success: false, Message: message}
}

func respondMeal(w http.ResponseWriter, resp Response) {
	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, resp)
}

func allowGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{http.MethodGet},
		})
	return false
}
