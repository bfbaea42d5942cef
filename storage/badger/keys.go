package badger

import (
	"strings"

	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
)

// Key prefixes for different data types
const (
	practicePrefix           = "prac:"
	practiceNamePrefix       = "pracn:"
	feedbackPrefix           = "fdbk:"
	feedbackByPracticePrefix = "fdbkp:"
	feedbackIDSeq            = "fdbkseq"
	documentPrefix           = "doc:"
	checkpointPrefix         = "chkpt:"
)

// makeIDKey appends the big-endian ID to prefix so keys sort by ID.
func makeIDKey(prefix string, id core.ID) []byte {
	buf := make([]byte, 0, len(prefix)+8)
	buf = append(buf, prefix...)
	return append(buf, storage.MarshalID(id)...)
}

// makePracticeKey generates a key for a practice by ID.
func makePracticeKey(id core.ID) []byte {
	return makeIDKey(practicePrefix, id)
}

// makePracticeNameKey generates the case-insensitive name index key.
func makePracticeNameKey(name string) []byte {
	return []byte(practiceNamePrefix + normalizeName(name))
}

// makeFeedbackKey generates a key for a feedback record by ID.
func makeFeedbackKey(id core.ID) []byte {
	return makeIDKey(feedbackPrefix, id)
}

// makeFeedbackPracticeKey generates a composite key for the per-practice index.
// Format: prefix + name + 0x00 + id
func makeFeedbackPracticeKey(practiceName string, id core.ID) []byte {
	prefix := makePartialFeedbackPracticeKey(practiceName)
	return append(prefix, storage.MarshalID(id)...)
}

// makePartialFeedbackPracticeKey generates the scan prefix for one practice.
// The 0x00 separator keeps "yoga" from matching "yoga nidra".
func makePartialFeedbackPracticeKey(practiceName string) []byte {
	name := normalizeName(practiceName)
	buf := make([]byte, 0, len(feedbackByPracticePrefix)+len(name)+9)
	buf = append(buf, feedbackByPracticePrefix...)
	buf = append(buf, name...)
	return append(buf, 0x00)
}

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return makeIDKey(documentPrefix, id)
}

// makeCheckpointKey generates a key for a source checkpoint.
func makeCheckpointKey(source string) []byte {
	return []byte(checkpointPrefix + source)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
