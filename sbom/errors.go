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


package sbom

import "errors"

var (
	// ErrSyftNotInstalled indicates the syft binary is missing from PATH.
	ErrSyftNotInstalled = errors.New("syft is not installed or not in PATH")

	// ErrScanFailed indicates the analyzer exited with an error.
	ErrScanFailed = errors.New("sbom scan failed")

	// ErrInvalidDocument indicates the SBOM document could not be parsed.
	ErrInvalidDocument = errors.New("invalid sbom document")
)
