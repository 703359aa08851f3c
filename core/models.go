package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// OwnerID derives the owner identifier from an opaque subject string
// (typically the subject claim of a bearer token).
func OwnerID(subject string) ID {
	return IDFromContent("owner:" + subject)
}

// UnknownVersion is the sentinel stored for components whose version could
// not be determined from the scanner output.
const UnknownVersion = "unknown"

// Status tracks the processing lifecycle of an uploaded application.
type Status int

const (
	// StatusProcessing means the artifact was recorded but not yet analyzed.
	StatusProcessing Status = iota + 1
	// StatusCompleted means analysis finished and components are stored.
	StatusCompleted
	// StatusFailed means analysis failed; ErrorMessage carries the cause.
	StatusFailed
)

// String returns the lowercase wire form of the status.
func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SBOM document formats emitted by the scanner.
const (
	FormatCycloneDX = "cyclonedx"
	FormatSPDX      = "spdx"
)

// Application is one uploaded artifact together with its extracted inventory
// metadata. Every application belongs to exactly one owner; all queries are
// owner-scoped.
type Application struct {
	Id               ID
	OwnerId          ID
	Name             string
	Version          string
	Platform         string
	BinaryType       string
	Manufacturer     string
	Supplier         string
	OriginalFilename string
	FileSize         int64
	FileHash         string // hex BLAKE2b-256 of the uploaded artifact
	Status           Status
	ErrorMessage     string
	SBOMFormat       string // primary stored format, FormatCycloneDX or FormatSPDX
	CycloneDX        []byte // raw CycloneDX JSON document
	SPDX             []byte // raw SPDX JSON document
	ComponentCount   int
	CreatedAt        time.Time
	AnalyzedAt       time.Time
}

// Component is one identified piece of software discovered in an artifact.
// Components are shared across an owner's applications: identity as stored is
// (owner, name, version), while comparison identity is (name, type).
type Component struct {
	Id            ID
	OwnerId       ID
	Name          string
	Version       string
	Type          string
	Language      string
	License       string
	PURL          string
	CPE           string
	Description   string
	Supplier      string
	Author        string
	Homepage      string
	RepositoryURL string
	CreatedAt     time.Time
}

// ContentID returns the content-based storage identity of the component,
// derived from the owner plus the name@version pair.
func (c *Component) ContentID() ID {
	return IDFromContent(strconv.FormatUint(uint64(c.OwnerId), 10) + ":" + c.Name + "@" + c.Version)
}

// Key returns the comparison identity of the component. Two components with
// equal name and type are the same component across inventories even when
// every other field differs.
func (c *Component) Key() ComponentKey {
	return ComponentKey{Name: c.Name, Type: c.Type}
}

// ComponentKey is the exact, case-sensitive comparison identity (name, type).
type ComponentKey struct {
	Name string
	Type string
}

// ComponentRef links a component into an application's inventory with the
// relationship metadata reported by the scanner.
type ComponentRef struct {
	ComponentId      ID
	RelationshipType string
	Depth            int
	Confidence       float64
	DetectedBy       string
	CreatedAt        time.Time
}
