package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/tenderit/core"
)

// Key prefixes for different data types
const (
	noticeRecordPrefix   = "notrec"
	noticeRecordIDPrefix = "notrid"
	chunkRecordPrefix    = "chkrec"
	chunkNoticePrefix    = "chkbyn"
)

// makeNoticeKey generates a key for a notice by ID.
func makeNoticeKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", noticeRecordPrefix, id))
}

// makeNoticeRecordIDKey generates a key for the record-identifier index.
// Format: prefix:recordID
func makeNoticeRecordIDKey(recordID string) []byte {
	return []byte(noticeRecordIDPrefix + ":" + recordID)
}

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkNoticeKey generates a composite key for the notice index.
// Format: prefix:noticeID:position
func makeChunkNoticeKey(noticeID core.ID, position uint64) []byte {
	prefix := chunkNoticePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for noticeID + 8 bytes for position
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(noticeID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// makePartialChunkNoticeKey generates a partial key for per-notice scans.
// Format: prefix:noticeID
func makePartialChunkNoticeKey(noticeID core.ID) []byte {
	prefix := chunkNoticePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for noticeID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(noticeID))
	return buf
}
