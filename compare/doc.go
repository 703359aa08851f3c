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


// Package compare implements the structural diff between two component
// inventories.
//
// Components are keyed by their exact (name, type) pair; unlike search, no
// text normalization is applied, since comparison needs exact identity. Each
// component is classified as common, version-changed, added or removed, and
// the two inventories receive an aggregate Dice-coefficient similarity
// percentage. The engine is a pure function over already-fetched data and is
// safe for concurrent use.
package compare
