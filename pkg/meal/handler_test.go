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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/mealdb-proxy/pkg/server"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func readEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHandler_Routes(t *testing.T) {
	routes := NewHandler(NewService(&fakeUpstream{})).Routes()

	for _, path := range []string{
		"/api/meals/health",
		"/api/meals/search",
		"/api/meals/least-ingredients",
		"/api/meals/random",
	} {
		assert.Contains(t, routes, path)
	}
	assert.Len(t, routes, 4)
}

func TestHandler_Health(t *testing.T) {
	h := NewHandler(NewService(&fakeUpstream{}))

	rec := serve(t, h.HandleHealth, http.MethodGet, "/api/meals/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"MealDB Backend is running!","data":"OK"}`, rec.Body.String())
}

func TestHandler_Search(t *testing.T) {
	t.Run("results sorted in envelope", func(t *testing.T) {
		up := &fakeUpstream{searchBody: envelopeJSON(mealJSON("0", 4), mealJSON("1", 1))}
		h := NewHandler(NewService(up))

		rec := serve(t, h.HandleSearch, http.MethodGet, "/api/meals/search?name=Arrabiata")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		assert.Equal(t, []string{"Arrabiata"}, up.terms)

		env := readEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Success", env.Message)

		var meals []Meal
		require.NoError(t, json.Unmarshal(env.Data, &meals))
		assert.Equal(t, []string{"1", "0"}, ids(meals))
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{searchBody: `{"meals":null}`}))

		rec := serve(t, h.HandleSearch, http.MethodGet, "/api/meals/search?name=Nothing")

		assert.Equal(t, http.StatusOK, rec.Code)
		env := readEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "No meals found for: Nothing", env.Message)
		assert.Equal(t, "null", string(env.Data))
	})

	t.Run("name is required", func(t *testing.T) {
		up := &fakeUpstream{}
		h := NewHandler(NewService(up))

		for _, target := range []string{"/api/meals/search", "/api/meals/search?name=", "/api/meals/search?name=%20%20"} {
			rec := serve(t, h.HandleSearch, http.MethodGet, target)

			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			assert.Equal(t, "INVALID_REQUEST", decodeError(t, rec).Code)
		}
		assert.Empty(t, up.terms, "upstream must not be called")
	})

	t.Run("fetch failure is 502 and retryable", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{err: fetchFailure()}))

		rec := serve(t, h.HandleSearch, http.MethodGet, "/api/meals/search?name=x")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "FETCH_FAILED", resp.Code)
		assert.True(t, resp.Retryable)
		assert.Equal(t, "x", resp.Details["name"])
	})

	t.Run("malformed data is 502 and not retryable", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{searchBody: `{"meals":[{"idMeal":null}]}`}))

		rec := serve(t, h.HandleSearch, http.MethodGet, "/api/meals/search?name=x")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "MALFORMED_UPSTREAM_DATA", resp.Code)
		assert.False(t, resp.Retryable)
	})
}

func TestHandler_LeastIngredients(t *testing.T) {
	t.Run("with name", func(t *testing.T) {
		up := &fakeUpstream{searchBody: envelopeJSON(mealJSON("0", 5), mealJSON("1", 3), mealJSON("2", 3))}
		h := NewHandler(NewService(up))

		rec := serve(t, h.HandleLeastIngredients, http.MethodGet, "/api/meals/least-ingredients?name=pie")

		assert.Equal(t, http.StatusOK, rec.Code)
		env := readEnvelope(t, rec)
		require.True(t, env.Success)

		var m Meal
		require.NoError(t, json.Unmarshal(env.Data, &m))
		assert.Equal(t, "1", m.ID)
		assert.Equal(t, 0, up.randomCalls)
	})

	t.Run("without name falls back to random", func(t *testing.T) {
		up := &fakeUpstream{randomBody: envelopeJSON(mealJSON("r", 2))}
		h := NewHandler(NewService(up))

		rec := serve(t, h.HandleLeastIngredients, http.MethodGet, "/api/meals/least-ingredients")

		assert.Equal(t, http.StatusOK, rec.Code)
		env := readEnvelope(t, rec)
		require.True(t, env.Success)

		var m Meal
		require.NoError(t, json.Unmarshal(env.Data, &m))
		assert.Equal(t, "r", m.ID)
		assert.Equal(t, 1, up.randomCalls)
		assert.Empty(t, up.terms)
	})

	t.Run("not found with name", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{searchBody: `{"meals":null}`}))

		rec := serve(t, h.HandleLeastIngredients, http.MethodGet, "/api/meals/least-ingredients?name=zzz")

		env := readEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "No meals found for: zzz", env.Message)
	})

	t.Run("not found without name", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{randomBody: `{"meals":null}`}))

		rec := serve(t, h.HandleLeastIngredients, http.MethodGet, "/api/meals/least-ingredients")

		env := readEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Could not fetch meal", env.Message)
	})

	t.Run("failure", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{err: fetchFailure()}))

		rec := serve(t, h.HandleLeastIngredients, http.MethodGet, "/api/meals/least-ingredients?name=x")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHandler_Random(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{randomBody: envelopeJSON(mealJSON("52772", 3))}))

		rec := serve(t, h.HandleRandom, http.MethodGet, "/api/meals/random")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var raw struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		assert.Equal(t, "52772", raw.Data["id"])
		assert.Equal(t, float64(3), raw.Data["ingredientCount"])
		assert.Contains(t, raw.Data, "category")
		assert.Nil(t, raw.Data["category"])
	})

	t.Run("not found", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{randomBody: `{"meals":null}`}))

		rec := serve(t, h.HandleRandom, http.MethodGet, "/api/meals/random")

		assert.Equal(t, http.StatusOK, rec.Code)
		env := readEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "Could not fetch random meal", env.Message)
	})

	t.Run("failure", func(t *testing.T) {
		h := NewHandler(NewService(&fakeUpstream{err: fetchFailure()}))

		rec := serve(t, h.HandleRandom, http.MethodGet, "/api/meals/random")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "FETCH_FAILED", decodeError(t, rec).Code)
	})
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(NewService(&fakeUpstream{}))

	for path, handler := range h.Routes() {
		t.Run(path, func(t *testing.T) {
			rec := serve(t, handler, http.MethodPost, path)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
			assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Code)
		})
	}
}
