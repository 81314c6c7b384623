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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	cnserrors "github.com/NVIDIA/mealdb-proxy/pkg/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil", nil, OutcomeSuccess},
		{"fetch failed", cnserrors.New(cnserrors.ErrCodeFetchFailed, "down"), OutcomeFetchFailure},
		{"malformed", cnserrors.New(cnserrors.ErrCodeMalformedData, "bad"), OutcomeMalformed},
		{"wrapped malformed", fmt.Errorf("ctx: %w", cnserrors.New(cnserrors.ErrCodeMalformedData, "bad")), OutcomeMalformed},
		{"uncoded", context.DeadlineExceeded, OutcomeFetchFailure},
		{"plain", errors.New("boom"), OutcomeFetchFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestOutcome_IsFailure(t *testing.T) {
	assert.False(t, OutcomeSuccess.IsFailure())
	assert.False(t, OutcomeEmpty.IsFailure())
	assert.False(t, OutcomeNotFound.IsFailure())
	assert.True(t, OutcomeMalformed.IsFailure())
	assert.True(t, OutcomeFetchFailure.IsFailure())
}
