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
	cnserrors "github.com/NVIDIA/mealdb-proxy/pkg/errors"
)

// Outcome is the closed set of results a meal operation can produce.
type Outcome string

const (
	// OutcomeSuccess means data was returned.
	OutcomeSuccess Outcome = "success"
	// OutcomeEmpty means a search matched nothing.
	OutcomeEmpty Outcome = "empty"
	// OutcomeNotFound means a single-meal lookup found nothing.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeMalformed means upstream answered with unusable data.
	OutcomeMalformed Outcome = "malformed"
	// OutcomeFetchFailure means upstream could not be reached or refused.
	OutcomeFetchFailure Outcome = "fetch_failure"
)

// IsFailure reports whether the outcome is an error rather than a
// legitimate absence of data.
func (o Outcome) IsFailure() bool {
	return o == OutcomeMalformed || o == OutcomeFetchFailure
}

// Classify maps an operation error to its outcome. A nil error is success.
// Errors that carry no known code are treated as fetch failures since every
// other stage of an operation reports a coded error.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	code, _ := cnserrors.CodeOf(err)
	if code == cnserrors.ErrCodeMalformedData {
		return OutcomeMalformed
	}
	return OutcomeFetchFailure
}
