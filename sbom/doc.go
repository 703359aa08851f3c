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


// Package sbom generates and parses software bills of materials.
//
// Generation shells out to the syft analyzer behind the Scanner interface;
// parsing extracts component inventories from CycloneDX and SPDX JSON
// documents, and platform detection classifies artifacts by filename
// extension with document-content heuristics as fallback.
package sbom
