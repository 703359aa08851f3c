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

import (
	"fmt"
	"strings"
)

// placeholderNames are component names the scanner sometimes emits in place
// of a real identifier. Components carrying one of these are dropped.
var placeholderNames = map[string]bool{
	"":        true,
	"none":    true,
	"unknown": true,
	"null":    true,
}

// ValidateApplication validates an Application according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Status must be a known value
//
// NOT validated (populated by the pipeline):
//   - Id (0 is valid before the database sequence assigns one)
//   - ComponentCount, AnalyzedAt, SBOM documents
func ValidateApplication(app *Application) error {
	if app == nil {
		return fmt.Errorf("%w: application is nil", ErrInvalidApplication)
	}

	if app.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidApplication, ErrEmptyApplicationName)
	}

	if err := ValidateStatus(app.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidApplication, err)
	}

	return nil
}

// ValidateComponent validates a Component according to domain rules.
//
// Validation rules:
//   - Name must not be empty or a placeholder ("none", "unknown", "null")
func ValidateComponent(comp *Component) error {
	if comp == nil {
		return fmt.Errorf("%w: component is nil", ErrInvalidComponent)
	}

	if placeholderNames[strings.ToLower(strings.TrimSpace(comp.Name))] {
		return fmt.Errorf("%w: %w", ErrInvalidComponent, ErrInvalidComponentName)
	}

	return nil
}

// ValidateStatus validates a Status value.
func ValidateStatus(status Status) error {
	switch status {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidStatus, status)
	}
}
