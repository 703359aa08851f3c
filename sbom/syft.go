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
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Syft output format identifiers.
const (
	OutputCycloneDX = "cyclonedx-json"
	OutputSPDX      = "spdx-json"
)

const defaultScanTimeout = 5 * time.Minute

// Scanner generates SBOM documents from artifact files.
type Scanner interface {
	// Scan analyzes the artifact at path and returns the raw SBOM
	// document in the requested output format.
	Scan(ctx context.Context, path string, format string) ([]byte, error)

	// Installed reports whether the underlying analyzer is available.
	Installed() bool
}

// SyftScanner implements Scanner by shelling out to the syft binary.
type SyftScanner struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

var _ Scanner = (*SyftScanner)(nil)

// ScannerOption configures a SyftScanner.
type ScannerOption func(*SyftScanner) error

// WithBinary overrides the analyzer binary name or path.
func WithBinary(binary string) ScannerOption {
	return func(s *SyftScanner) error {
		if binary == "" {
			return fmt.Errorf("binary cannot be empty")
		}
		s.binary = binary
		return nil
	}
}

// WithTimeout overrides the per-scan timeout.
func WithTimeout(timeout time.Duration) ScannerOption {
	return func(s *SyftScanner) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		s.timeout = timeout
		return nil
	}
}

// WithScannerLogger sets the logger for scan operations.
func WithScannerLogger(logger *slog.Logger) ScannerOption {
	return func(s *SyftScanner) error {
		s.logger = logger
		return nil
	}
}

// NewSyftScanner creates a scanner backed by the syft CLI.
func NewSyftScanner(opts ...ScannerOption) (*SyftScanner, error) {
	s := &SyftScanner{
		binary:  "syft",
		timeout: defaultScanTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Installed reports whether the syft binary responds to a version probe.
func (s *SyftScanner) Installed() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, s.binary, "version").Run() == nil
}

// Scan runs syft against the artifact and returns the raw document.
func (s *SyftScanner) Scan(ctx context.Context, path string, format string) ([]byte, error) {
	if !s.Installed() {
		return nil, ErrSyftNotInstalled
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.Debug("running syft scan", "path", path, "format", format)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, "scan", path, "-o", format)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := stderr.String()
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrScanFailed, detail)
	}

	return stdout.Bytes(), nil
}
