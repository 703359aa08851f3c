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
	"path/filepath"
	"strings"
)

// Platform identifiers detected from artifacts.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformWindows = "windows"
	PlatformMacOS   = "macos"
	PlatformLinux   = "linux"
	PlatformUnknown = "unknown"
)

// extensionPlatforms maps artifact extensions to platforms.
var extensionPlatforms = map[string]string{
	".apk": PlatformAndroid,
	".ipa": PlatformIOS,
	".exe": PlatformWindows,
	".app": PlatformMacOS,
	".deb": PlatformLinux,
	".rpm": PlatformLinux,
}

// DetectPlatformFromFilename classifies an artifact by its file extension.
// Returns PlatformUnknown for archives and unrecognized extensions.
func DetectPlatformFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if platform, ok := extensionPlatforms[ext]; ok {
		return platform
	}
	return PlatformUnknown
}

// DetectPlatformFromDocument classifies an artifact by its component
// inventory. Android dependencies and maven coordinates indicate android;
// swift and cocoapods indicate ios. Used as a fallback when the filename
// extension is inconclusive.
func DetectPlatformFromDocument(doc []byte) (string, error) {
	comps, err := ParseCycloneDX(doc)
	if err != nil {
		return PlatformUnknown, err
	}

	for _, comp := range comps {
		name := strings.ToLower(comp.Name)
		purl := strings.ToLower(comp.PURL)

		if strings.Contains(name, "android") || strings.Contains(purl, "pkg:maven") {
			return PlatformAndroid, nil
		}
		if strings.Contains(name, "swift") || strings.Contains(purl, "pkg:cocoapods") {
			return PlatformIOS, nil
		}
	}
	return PlatformUnknown, nil
}
