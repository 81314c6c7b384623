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

// Package serializer provides the HTTP plumbing and output encoders shared by
// the API server and the CLI.
//
// # HTTP
//
// RespondJSON buffers the encoded payload before writing headers so a failed
// encoding never produces a partial 200 response:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// HttpReader performs single-attempt GET requests over a pooled transport with
// connect, TLS, header and total timeouts. Any non-2xx status is reported as a
// *StatusError so callers can classify it:
//
//	r := serializer.NewHttpReader(serializer.WithTotalTimeout(10 * time.Second))
//	body, err := r.ReadWithContext(ctx, "https://www.themealdb.com/api/json/v1/1/random.php")
//
// # Output formats
//
// JSON:
//   - Machine-parseable, indented
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened FIELD/VALUE listing keyed by json field names
//   - Suitable for terminal viewing
//
// Usage:
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer writer.Close()
//	if err := writer.Serialize(ctx, meals); err != nil {
//		return err
//	}
package serializer
