// Copyright 2025 Poiesic Systems
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


// Package search provides relevance-ranked search over application inventories.
//
// A raw query string is parsed into quoted phrases, excluded terms and free
// terms, then every candidate application is scored across its weighted
// metadata fields by combining several signals:
//   - exact-phrase and full-query matching
//   - prefix and word-boundary matching per term
//   - substring matching per term
//   - fuzzy partial-ratio matching for near misses
//
// Scores are accumulated into an inspectable per-signal breakdown, boosted
// when multiple free terms hit the same record, and ranked with a stable
// descending sort. Scoring is pure and holds no cross-invocation state, so it
// is safe to call from any number of goroutines.
package search
