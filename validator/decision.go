// Copyright 2020-2021 Dolthub, Inc.
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

package validator

// Decision is a handler's verdict on how the driver should continue
// traversal (spec.md §4.2).
type Decision int

const (
	// Recurse: visit children, then re-invoke the handler with start=false.
	Recurse Decision = iota
	// Continue: skip children and skip the post-order call — the handler
	// already walked whatever children it needed to.
	Continue
	// Break: abort the entire traversal immediately.
	Break
)
