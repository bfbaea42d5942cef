package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/poiesic/praxis/core"
)

// idSize is the encoded size of a core.ID.
const idSize = 8

// MarshalID serializes an ID to 8 big-endian bytes, so encoded IDs sort
// in numeric order when used inside keys.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, idSize)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) < idSize {
		return 0, fmt.Errorf("%w: need %d bytes for an ID, got %d", ErrTruncatedData, idSize, len(data))
	}
	return core.ID(binary.BigEndian.Uint64(data)), nil
}

// MarshalPractice serializes a Practice to bytes.
func MarshalPractice(practice *core.Practice) ([]byte, error) {
	return marshal(PracticeMUS, practice)
}

// UnmarshalPractice deserializes a Practice from bytes.
func UnmarshalPractice(data []byte) (*core.Practice, error) {
	return unmarshal(PracticeMUS, data)
}

// MarshalFeedback serializes a Feedback record to bytes.
func MarshalFeedback(feedback *core.Feedback) ([]byte, error) {
	return marshal(FeedbackMUS, feedback)
}

// UnmarshalFeedback deserializes a Feedback record from bytes.
func UnmarshalFeedback(data []byte) (*core.Feedback, error) {
	return unmarshal(FeedbackMUS, data)
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) ([]byte, error) {
	return marshal(DocumentMUS, doc)
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	return unmarshal(DocumentMUS, data)
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) ([]byte, error) {
	return marshal(CheckpointMUS, checkpoint)
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	return unmarshal(CheckpointMUS, data)
}

func marshal[T any](ser mus.Serializer[T], v *T) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil record", ErrSerializationFailed)
	}
	buf := make([]byte, ser.Size(*v))
	ser.Marshal(*v, buf)
	return buf, nil
}

func unmarshal[T any](ser mus.Serializer[T], data []byte) (*T, error) {
	v, n, err := ser.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &v, nil
}
