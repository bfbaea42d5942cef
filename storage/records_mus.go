package storage

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/praxis/core"
)

// Record serializers. Field order is the wire order; append new fields at
// the end of a struct.
var (
	PracticeMUS   mus.Serializer[core.Practice]   = practiceSer{}
	FeedbackMUS   mus.Serializer[core.Feedback]   = feedbackSer{}
	DocumentMUS   mus.Serializer[core.Document]   = documentSer{}
	CheckpointMUS mus.Serializer[core.Checkpoint] = checkpointSer{}

	idMUS                 mus.Serializer[core.ID]                  = idSer{}
	timeMUS               mus.Serializer[time.Time]                = timeSer{}
	stringsMUS            mus.Serializer[[]string]                 = sliceSer[string]{elem: ord.String}
	vectorMUS             mus.Serializer[[]float32]                = sliceSer[float32]{elem: raw.Float32}
	metadataMUS           mus.Serializer[map[string]string]        = stringMapSer{}
	primaryIndicationMUS  mus.Serializer[core.PrimaryIndication]   = primaryIndicationSer{}
	primaryIndicationsMUS mus.Serializer[[]core.PrimaryIndication] = sliceSer[core.PrimaryIndication]{elem: primaryIndicationMUS}
)

// idSer writes IDs as varints. Keys use MarshalID instead.
type idSer struct{}

func (idSer) Marshal(v core.ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idSer) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idSer) Size(v core.ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (idSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// timeSer stores seconds and nanoseconds since the Unix epoch. Decoded
// times are in UTC; the zero time survives the round trip.
type timeSer struct{}

func (timeSer) Marshal(v time.Time, bs []byte) (n int) {
	n = varint.Int64.Marshal(v.Unix(), bs)
	n += varint.Int64.Marshal(int64(v.Nanosecond()), bs[n:])
	return
}

func (timeSer) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	var sec, nsec int64
	sec, n, err = varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	nsec, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v = time.Unix(sec, nsec).UTC()
	return
}

func (timeSer) Size(v time.Time) int {
	return varint.Int64.Size(v.Unix()) + varint.Int64.Size(int64(v.Nanosecond()))
}

func (s timeSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// sliceSer writes a length prefix followed by each element. An empty
// slice decodes as nil.
type sliceSer[T any] struct {
	elem mus.Serializer[T]
}

func (s sliceSer[T]) Marshal(v []T, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, e := range v {
		n += s.elem.Marshal(e, bs[n:])
	}
	return
}

func (s sliceSer[T]) Unmarshal(bs []byte) (v []T, n int, err error) {
	var length int
	length, n, err = readLength(bs)
	if err != nil || length == 0 {
		return
	}
	v = make([]T, length)
	var n1 int
	for i := range v {
		v[i], n1, err = s.elem.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return
}

func (s sliceSer[T]) Size(v []T) (size int) {
	size = varint.Int.Size(len(v))
	for _, e := range v {
		size += s.elem.Size(e)
	}
	return
}

func (s sliceSer[T]) Skip(bs []byte) (n int, err error) {
	var length int
	length, n, err = readLength(bs)
	if err != nil {
		return
	}
	var n1 int
	for range length {
		n1, err = s.elem.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

// stringMapSer writes entries in key order so equal maps encode to equal
// bytes. An empty map decodes as nil.
type stringMapSer struct{}

func (stringMapSer) Marshal(v map[string]string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, k := range slices.Sorted(maps.Keys(v)) {
		n += ord.String.Marshal(k, bs[n:])
		n += ord.String.Marshal(v[k], bs[n:])
	}
	return
}

func (stringMapSer) Unmarshal(bs []byte) (v map[string]string, n int, err error) {
	var length int
	length, n, err = readLength(bs)
	if err != nil || length == 0 {
		return
	}
	v = make(map[string]string, length)
	var (
		key, value string
		n1         int
	)
	for range length {
		key, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		value, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		v[key] = value
	}
	return
}

func (stringMapSer) Size(v map[string]string) (size int) {
	size = varint.Int.Size(len(v))
	for k, val := range v {
		size += ord.String.Size(k) + ord.String.Size(val)
	}
	return
}

func (s stringMapSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// readLength reads a length prefix. Every element takes at least one
// byte, so a length beyond the remaining input is corrupt.
func readLength(bs []byte) (length, n int, err error) {
	length, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 || length > len(bs)-n {
		err = fmt.Errorf("%w: length %d with %d bytes left", ErrInvalidLength, length, len(bs)-n)
	}
	return
}

type primaryIndicationSer struct{}

func (primaryIndicationSer) Marshal(v core.PrimaryIndication, bs []byte) (n int) {
	n = ord.String.Marshal(v.Condition, bs)
	n += ord.String.Marshal(v.Effectiveness, bs[n:])
	n += ord.String.Marshal(v.Evidence, bs[n:])
	return
}

func (primaryIndicationSer) Unmarshal(bs []byte) (v core.PrimaryIndication, n int, err error) {
	v.Condition, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Effectiveness, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Evidence, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (primaryIndicationSer) Size(v core.PrimaryIndication) int {
	return ord.String.Size(v.Condition) + ord.String.Size(v.Effectiveness) + ord.String.Size(v.Evidence)
}

func (s primaryIndicationSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type practiceSer struct{}

func (practiceSer) Marshal(v core.Practice, bs []byte) (n int) {
	n = idMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.Description.Short, bs[n:])
	n += ord.String.Marshal(v.Description.Full, bs[n:])
	n += primaryIndicationsMUS.Marshal(v.Indications.Primary, bs[n:])
	n += stringsMUS.Marshal(v.Indications.Secondary, bs[n:])
	n += stringsMUS.Marshal(v.Indications.Preventive, bs[n:])
	n += stringsMUS.Marshal(v.Keywords.Symptoms, bs[n:])
	n += stringsMUS.Marshal(v.Keywords.Benefits, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (practiceSer) Unmarshal(bs []byte) (v core.Practice, n int, err error) {
	v.Id, n, err = idMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description.Short, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description.Full, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Indications.Primary, n1, err = primaryIndicationsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Indications.Secondary, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Indications.Preventive, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Keywords.Symptoms, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Keywords.Benefits, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (practiceSer) Size(v core.Practice) int {
	return idMUS.Size(v.Id) +
		ord.String.Size(v.Name) +
		ord.String.Size(v.Category) +
		ord.String.Size(v.Description.Short) +
		ord.String.Size(v.Description.Full) +
		primaryIndicationsMUS.Size(v.Indications.Primary) +
		stringsMUS.Size(v.Indications.Secondary) +
		stringsMUS.Size(v.Indications.Preventive) +
		stringsMUS.Size(v.Keywords.Symptoms) +
		stringsMUS.Size(v.Keywords.Benefits) +
		vectorMUS.Size(v.Vector) +
		timeMUS.Size(v.InsertedAt) +
		timeMUS.Size(v.UpdatedAt)
}

func (s practiceSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type feedbackSer struct{}

func (feedbackSer) Marshal(v core.Feedback, bs []byte) (n int) {
	n = idMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.SessionID, bs[n:])
	n += ord.String.Marshal(v.PracticeName, bs[n:])
	n += varint.Int.Marshal(v.Rating, bs[n:])
	n += ord.String.Marshal(v.Comment, bs[n:])
	n += timeMUS.Marshal(v.CreatedAt, bs[n:])
	return
}

func (feedbackSer) Unmarshal(bs []byte) (v core.Feedback, n int, err error) {
	v.Id, n, err = idMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.SessionID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.PracticeName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Rating, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Comment, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (feedbackSer) Size(v core.Feedback) int {
	return idMUS.Size(v.Id) +
		ord.String.Size(v.SessionID) +
		ord.String.Size(v.PracticeName) +
		varint.Int.Size(v.Rating) +
		ord.String.Size(v.Comment) +
		timeMUS.Size(v.CreatedAt)
}

func (s feedbackSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type documentSer struct{}

func (documentSer) Marshal(v core.Document, bs []byte) (n int) {
	n = idMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Content, bs[n:])
	n += metadataMUS.Marshal(v.Metadata, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	return
}

func (documentSer) Unmarshal(bs []byte) (v core.Document, n int, err error) {
	v.Id, n, err = idMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (documentSer) Size(v core.Document) int {
	return idMUS.Size(v.Id) +
		ord.String.Size(v.Content) +
		metadataMUS.Size(v.Metadata) +
		vectorMUS.Size(v.Vector) +
		timeMUS.Size(v.InsertedAt)
}

func (s documentSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type checkpointSer struct{}

func (checkpointSer) Marshal(v core.Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.Source, bs)
	n += idMUS.Marshal(v.ContentHash, bs[n:])
	n += varint.Int.Marshal(v.Chunks, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (checkpointSer) Unmarshal(bs []byte) (v core.Checkpoint, n int, err error) {
	v.Source, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ContentHash, n1, err = idMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Chunks, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (checkpointSer) Size(v core.Checkpoint) int {
	return ord.String.Size(v.Source) +
		idMUS.Size(v.ContentHash) +
		varint.Int.Size(v.Chunks) +
		timeMUS.Size(v.UpdatedAt)
}

func (s checkpointSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
