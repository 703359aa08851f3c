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

// cycloneDXDocument maps the subset of CycloneDX JSON we extract.
type cycloneDXDocument struct {
	Components []cycloneDXComponent `json:"components"`
}

type cycloneDXComponent struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Type        string              `json:"type"`
	PURL        string              `json:"purl"`
	CPE         string              `json:"cpe"`
	Description string              `json:"description"`
	Licenses    []cycloneDXLicense  `json:"licenses"`
	Properties  []cycloneDXProperty `json:"properties"`
}

type cycloneDXLicense struct {
	License struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"license"`
}

type cycloneDXProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseCycloneDX extracts the component inventory from a CycloneDX JSON
// document. Components with placeholder names are dropped; missing versions
// default to core.UnknownVersion.
func ParseCycloneDX(doc []byte) ([]*core.Component, error) {
	var parsed cycloneDXDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var comps []*core.Component
	for _, c := range parsed.Components {
		comp := &core.Component{
			Name:        c.Name,
			Version:     c.Version,
			Type:        c.Type,
			PURL:        c.PURL,
			CPE:         c.CPE,
			Description: c.Description,
			License:     cycloneDXLicenseName(c.Licenses),
		}
		if comp.Version == "" {
			comp.Version = core.UnknownVersion
		}
		for _, prop := range c.Properties {
			if prop.Name == "syft:language" {
				comp.Language = prop.Value
			}
		}
		if err := core.ValidateComponent(comp); err != nil {
			continue
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

// cycloneDXLicenseName returns the first declared license's SPDX id, falling
// back to its free-form name.
func cycloneDXLicenseName(licenses []cycloneDXLicense) string {
	if len(licenses) == 0 {
		return ""
	}
	if licenses[0].License.ID != "" {
		return licenses[0].License.ID
	}
	return licenses[0].License.Name
}
