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
	"slices"
)

// Ingredient is one ingredient of a meal with its measure.
// Name is never blank; Measure may be empty.
type Ingredient struct {
	Name    string `json:"name" yaml:"name"`
	Measure string `json:"measure" yaml:"measure"`
}

// Meal is the normalized form of an upstream meal record.
//
// Optional fields are nil when upstream omitted them or sent null.
// The ingredient list is fixed at parse time so IngredientCount always
// equals the number of ingredients.
type Meal struct {
	ID           string
	Name         string
	Image        string
	Instructions string

	Category   *string
	Area       *string
	Tags       *string
	YoutubeURL *string
	Source     *string

	ingredients []Ingredient
}

// NewMeal returns a meal with the given ingredients. The slice is copied.
func NewMeal(id, name, image, instructions string, ingredients []Ingredient) Meal {
	return Meal{
		ID:           id,
		Name:         name,
		Image:        image,
		Instructions: instructions,
		ingredients:  slices.Clone(ingredients),
	}
}

// Ingredients returns a copy of the ingredient list in upstream slot order.
func (m Meal) Ingredients() []Ingredient {
	return slices.Clone(m.ingredients)
}

// IngredientCount returns the number of ingredients.
func (m Meal) IngredientCount() int {
	return len(m.ingredients)
}

// mealView is the wire shape of a Meal.
type mealView struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Image           string       `json:"image" yaml:"image"`
	Ingredients     []Ingredient `json:"ingredients" yaml:"ingredients"`
	IngredientCount int          `json:"ingredientCount" yaml:"ingredientCount"`
	Instructions    string       `json:"instructions" yaml:"instructions"`
	Category        *string      `json:"category" yaml:"category"`
	Area            *string      `json:"area" yaml:"area"`
	Tags            *string      `json:"tags" yaml:"tags"`
	YoutubeURL      *string      `json:"youtubeUrl" yaml:"youtubeUrl"`
	Source          *string      `json:"source" yaml:"source"`
}

func (m Meal) view() mealView {
	ingredients := m.ingredients
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	return mealView{
		ID:              m.ID,
		Name:            m.Name,
		Image:           m.Image,
		Ingredients:     ingredients,
		IngredientCount: len(ingredients),
		Instructions:    m.Instructions,
		Category:        m.Category,
		Area:            m.Area,
		Tags:            m.Tags,
		YoutubeURL:      m.YoutubeURL,
		Source:          m.Source,
	}
}

// MarshalJSON implements json.Marshaler.
func (m Meal) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.view())
}

// MarshalYAML implements yaml.Marshaler.
func (m Meal) MarshalYAML() (any, error) {
	return m.view(), nil
}

// UnmarshalJSON implements json.Unmarshaler. A provided ingredientCount is
// ignored; the count is always derived from the ingredient list.
func (m *Meal) UnmarshalJSON(data []byte) error {
	var v mealView
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Meal{
		ID:           v.ID,
		Name:         v.Name,
		Image:        v.Image,
		Instructions: v.Instructions,
		Category:     v.Category,
		Area:         v.Area,
		Tags:         v.Tags,
		YoutubeURL:   v.YoutubeURL,
		Source:       v.Source,
		ingredients:  v.Ingredients,
	}
	return nil
}
