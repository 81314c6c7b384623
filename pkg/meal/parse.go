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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	cnserrors "github.com/NVIDIA/mealdb-proxy/pkg/errors"
)

// MaxIngredientSlots is the number of numbered ingredient/measure pairs
// upstream records carry.
const MaxIngredientSlots = 20

// Upstream field names.
const (
	fieldID           = "idMeal"
	fieldName         = "strMeal"
	fieldThumb        = "strMealThumb"
	fieldInstructions = "strInstructions"
	fieldCategory     = "strCategory"
	fieldArea         = "strArea"
	fieldTags         = "strTags"
	fieldYoutube      = "strYoutube"
	fieldSource       = "strSource"

	ingredientPrefix = "strIngredient"
	measurePrefix    = "strMeasure"
)

type jsonKind int

const (
	kindAbsent jsonKind = iota // missing key or JSON null
	kindString
	kindNumber
	kindBool
	kindOther
)

func (k jsonKind) String() string {
	switch k {
	case kindAbsent:
		return "null"
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBool:
		return "bool"
	default:
		return "non-scalar"
	}
}

// ParseMeals decodes an upstream envelope {"meals": [...] | null} and parses
// every element. A missing or null "meals" yields an empty result.
func ParseMeals(body []byte) ([]Meal, error) {
	elems, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	meals := make([]Meal, 0, len(elems))
	for i, elem := range elems {
		m, err := parseElement(elem)
		if err != nil {
			return nil, withIndex(err, i)
		}
		meals = append(meals, m)
	}
	return meals, nil
}

// ParseFirst decodes an upstream envelope and parses only its first element.
// Extra elements are ignored. found is false when "meals" is missing, null
// or empty.
func ParseFirst(body []byte) (m Meal, found bool, err error) {
	elems, err := decodeEnvelope(body)
	if err != nil {
		return Meal{}, false, err
	}
	if len(elems) == 0 {
		return Meal{}, false, nil
	}

	m, err = parseElement(elems[0])
	if err != nil {
		return Meal{}, false, withIndex(err, 0)
	}
	return m, true, nil
}

// ParseMeal converts a single upstream meal object into a Meal.
//
// idMeal, strMeal, strMealThumb and strInstructions are required. A missing,
// null or non-string value for any of them fails with
// MALFORMED_UPSTREAM_DATA; idMeal may also be a JSON number.
func ParseMeal(obj map[string]json.RawMessage) (Meal, error) {
	id, err := requiredText(obj, fieldID, true)
	if err != nil {
		return Meal{}, err
	}

	m := Meal{ID: id}
	if m.Name, err = requiredText(obj, fieldName, false); err != nil {
		return Meal{}, withMealID(err, id)
	}
	if m.Image, err = requiredText(obj, fieldThumb, false); err != nil {
		return Meal{}, withMealID(err, id)
	}
	if m.Instructions, err = requiredText(obj, fieldInstructions, false); err != nil {
		return Meal{}, withMealID(err, id)
	}

	optional := []struct {
		key string
		dst **string
	}{
		{fieldCategory, &m.Category},
		{fieldArea, &m.Area},
		{fieldTags, &m.Tags},
		{fieldYoutube, &m.YoutubeURL},
		{fieldSource, &m.Source},
	}
	for _, o := range optional {
		if *o.dst, err = optionalText(obj, o.key); err != nil {
			return Meal{}, withMealID(err, id)
		}
	}

	if m.ingredients, err = extractIngredients(obj); err != nil {
		return Meal{}, withMealID(err, id)
	}

	return m, nil
}

// extractIngredients walks slots 1..MaxIngredientSlots in order. Blank or
// missing names are skipped along with their measures.
func extractIngredients(obj map[string]json.RawMessage) ([]Ingredient, error) {
	var ingredients []Ingredient

	for i := 1; i <= MaxIngredientSlots; i++ {
		nameKey := fmt.Sprintf("%s%d", ingredientPrefix, i)
		name, kind := scalar(obj, nameKey)
		switch kind {
		case kindAbsent:
			continue
		case kindOther:
			return nil, malformed(nameKey, "unexpected "+kind.String()+" value")
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		measureKey := fmt.Sprintf("%s%d", measurePrefix, i)
		measure, kind := scalar(obj, measureKey)
		if kind == kindOther {
			return nil, malformed(measureKey, "unexpected "+kind.String()+" value")
		}

		ingredients = append(ingredients, Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(measure),
		})
	}

	return ingredients, nil
}

func requiredText(obj map[string]json.RawMessage, key string, allowNumber bool) (string, error) {
	text, kind := scalar(obj, key)
	switch {
	case kind == kindString:
		return text, nil
	case kind == kindNumber && allowNumber:
		return text, nil
	case kind == kindAbsent:
		if _, present := obj[key]; present {
			return "", malformed(key, "required field is null")
		}
		return "", malformed(key, "required field is missing")
	default:
		return "", malformed(key, "required field is a "+kind.String())
	}
}

func optionalText(obj map[string]json.RawMessage, key string) (*string, error) {
	text, kind := scalar(obj, key)
	switch kind {
	case kindAbsent:
		return nil, nil
	case kindOther:
		return nil, malformed(key, "unexpected "+kind.String()+" value")
	default:
		return &text, nil
	}
}

// scalar returns the text of obj[key] and its JSON kind. Numbers keep their
// literal form.
func scalar(obj map[string]json.RawMessage, key string) (string, jsonKind) {
	raw := bytes.TrimSpace(obj[key])
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", kindAbsent
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", kindOther
		}
		return s, kindString
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", kindOther
		}
		return fmt.Sprintf("%t", b), kindBool
	case '{', '[':
		return "", kindOther
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", kindOther
		}
		return n.String(), kindNumber
	}
}

func decodeEnvelope(body []byte) ([]json.RawMessage, error) {
	var env struct {
		Meals json.RawMessage `json:"meals"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeMalformedData, "upstream payload is not a JSON object", err)
	}

	raw := bytes.TrimSpace(env.Meals)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeMalformedData, "upstream meals is not a list", err)
	}
	return elems, nil
}

func parseElement(elem json.RawMessage) (Meal, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(elem, &obj); err != nil {
		return Meal{}, cnserrors.Wrap(cnserrors.ErrCodeMalformedData, "upstream meal is not an object", err)
	}
	return ParseMeal(obj)
}

func malformed(field, reason string) *cnserrors.StructuredError {
	return cnserrors.NewWithContext(cnserrors.ErrCodeMalformedData,
		fmt.Sprintf("%s: %s", field, reason),
		map[string]any{"field": field})
}

func withMealID(err error, id string) error {
	return withContext(err, "idMeal", id)
}

func withIndex(err error, i int) error {
	return withContext(err, "index", i)
}

// withContext adds key to a structured error's context in place.
func withContext(err error, key string, value any) error {
	se, ok := err.(*cnserrors.StructuredError)
	if !ok {
		return err
	}
	if se.Context == nil {
		se.Context = map[string]any{}
	}
	se.Context[key] = value
	return se
}
