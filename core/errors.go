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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidApplication indicates an Application failed validation.
	ErrInvalidApplication = errors.New("invalid application")

	// ErrInvalidComponent indicates a Component failed validation.
	ErrInvalidComponent = errors.New("invalid component")

	// ErrEmptyApplicationName indicates the application Name field is empty.
	ErrEmptyApplicationName = errors.New("application name cannot be empty")

	// ErrInvalidStatus indicates an invalid Status value.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidComponentName indicates a component name that must be skipped.
	ErrInvalidComponentName = errors.New("component name is empty or a placeholder")
)
