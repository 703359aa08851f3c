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


package compare

import "errors"

var (
	// ErrSameApplication is returned when an application is compared with itself.
	ErrSameApplication = errors.New("cannot compare an application with itself")

	// ErrApplicationRepositoryRequired is returned when an application repository is not provided.
	ErrApplicationRepositoryRequired = errors.New("application repository required")

	// ErrComponentRepositoryRequired is returned when a component repository is not provided.
	ErrComponentRepositoryRequired = errors.New("component repository required")
)
