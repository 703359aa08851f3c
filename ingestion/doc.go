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


// Package ingestion turns uploaded artifacts into stored applications with
// component inventories.
//
// The pipeline hashes the artifact for duplicate detection, records the
// application in processing state, runs the SBOM scanner, extracts and links
// components, and marks the application completed or failed. Analysis can
// run synchronously (Import) or on a worker pool (Submit).
package ingestion
