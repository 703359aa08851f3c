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

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/bomvault/core"
)

// spdxDocument maps the subset of SPDX JSON we extract.
type spdxDocument struct {
	Packages []spdxPackage `json:"packages"`
}

type spdxPackage struct {
	Name             string            `json:"name"`
	VersionInfo      string            `json:"versionInfo"`
	LicenseConcluded string            `json:"licenseConcluded"`
	Description      string            `json:"description"`
	Supplier         string            `json:"supplier"`
	Homepage         string            `json:"homepage"`
	ExternalRefs     []spdxExternalRef `json:"externalRefs"`
}

type spdxExternalRef struct {
	ReferenceType    string `json:"referenceType"`
	ReferenceLocator string `json:"referenceLocator"`
}

// ParseSPDX extracts the component inventory from an SPDX JSON document.
// SPDX packages carry no component type, so they all classify as "library".
func ParseSPDX(doc []byte) ([]*core.Component, error) {
	var parsed spdxDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var comps []*core.Component
	for _, pkg := range parsed.Packages {
		comp := &core.Component{
			Name:        pkg.Name,
			Version:     pkg.VersionInfo,
			Type:        "library",
			PURL:        spdxPURL(pkg.ExternalRefs),
			License:     spdxLicense(pkg.LicenseConcluded),
			Description: pkg.Description,
			Supplier:    pkg.Supplier,
			Homepage:    pkg.Homepage,
		}
		if comp.Version == "" {
			comp.Version = core.UnknownVersion
		}
		if err := core.ValidateComponent(comp); err != nil {
			continue
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

// spdxPURL finds the package-url external reference, if present.
func spdxPURL(refs []spdxExternalRef) string {
	for _, ref := range refs {
		if ref.ReferenceType == "purl" {
			return ref.ReferenceLocator
		}
	}
	return ""
}

// spdxLicense filters out the NOASSERTION sentinel SPDX uses for unknown
// licenses.
func spdxLicense(concluded string) string {
	if concluded == "NOASSERTION" {
		return ""
	}
	return concluded
}
