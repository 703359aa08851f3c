package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/bomvault/core"
)

// Key prefixes for different data types
const (
	appRecordPrefix    = "apprec"
	appRecordIDSeq     = "apprecseq"
	appOwnerPrefix     = "appown"
	appFileHashPrefix  = "apphash"
	compRecordPrefix   = "comprec"
	appComponentPrefix = "appcomp"
)

// makeAppRecordKey generates a key for an application record by ID.
func makeAppRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", appRecordPrefix, id))
}

// makeAppOwnerKey generates a composite key for the owner index.
// Format: prefix:ownerID:appID
func makeAppOwnerKey(owner, id core.ID) []byte {
	prefix := appOwnerPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for ownerID + 8 bytes for appID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(owner))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialAppOwnerKey generates a partial key for listing an owner's applications.
// Format: prefix:ownerID
func makePartialAppOwnerKey(owner core.ID) []byte {
	prefix := appOwnerPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for ownerID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(owner))
	return buf
}

// makeAppFileHashKey generates a composite key for the file-hash index.
// Format: prefix:ownerID:hash
func makeAppFileHashKey(owner core.ID, fileHash string) []byte {
	prefix := appFileHashPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(fileHash)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(owner))
	offset += 8
	copy(buf[offset:], []byte(fileHash))
	return buf
}

// makeCompRecordKey generates a key for a component record by ID.
func makeCompRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", compRecordPrefix, id))
}

// makeAppComponentKey generates a composite key for an inventory link.
// Format: prefix:appID:componentID
func makeAppComponentKey(appID, componentID core.ID) []byte {
	prefix := appComponentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for appID + 8 bytes for componentID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(appID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(componentID))
	return buf
}

// makePartialAppComponentKey generates a partial key for an application's inventory.
// Format: prefix:appID
func makePartialAppComponentKey(appID core.ID) []byte {
	prefix := appComponentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for appID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(appID))
	return buf
}
