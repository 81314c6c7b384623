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
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// mealJSON renders an upstream meal object with n ingredients.
func mealJSON(id string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"idMeal":%q,"strMeal":"Meal %s","strMealThumb":"https://img/%s.jpg","strInstructions":"Cook."`, id, id, id)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `,"strIngredient%d":"Item %d","strMeasure%d":"%d g"`, i, i, i, i)
	}
	for i := n + 1; i <= MaxIngredientSlots; i++ {
		fmt.Fprintf(&b, `,"strIngredient%d":"","strMeasure%d":" "`, i, i)
	}
	b.WriteString("}")
	return b.String()
}

func envelopeJSON(meals ...string) string {
	return `{"meals":[` + strings.Join(meals, ",") + `]}`
}

func mustObject(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &obj))
	return obj
}

func ids(meals []Meal) []string {
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		out = append(out, m.ID)
	}
	return out
}

// fakeUpstream serves canned payloads and records calls.
type fakeUpstream struct {
	mu sync.Mutex

	searchBody string
	randomBody string
	err        error

	terms       []string
	randomCalls int
}

func (f *fakeUpstream) Search(_ context.Context, term string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terms = append(f.terms, term)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.searchBody), nil
}

func (f *fakeUpstream) Random(_ context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.randomCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.randomBody), nil
}
