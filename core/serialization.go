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


package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for persisted domain types. Written by hand against the
// mus-go primitives; field order is part of the storage format and must not
// change without a migration.

var (
	// IDMUS serializes an ID.
	IDMUS = idSer{}

	// FragmentMUS serializes a Fragment.
	FragmentMUS = fragmentSer{}

	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	float64SliceMUS = ord.NewSliceSer[float64](varint.Float64)
)

type idSer struct{}

var _ mus.Serializer[ID] = idSer{}

func (idSer) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idSer) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// zeroMicro is the UnixMicro encoding of the zero time, kept as a sentinel
// so the zero value survives a round trip.
var zeroMicro = time.Time{}.UnixMicro()

// marshalTime encodes a time as Unix microseconds.
func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	if micros == zeroMicro {
		return time.Time{}, n, nil
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

type fragmentSer struct{}

var _ mus.Serializer[Fragment] = fragmentSer{}

func (fragmentSer) Marshal(f Fragment, bs []byte) (n int) {
	n = ord.String.Marshal(f.Id, bs)
	n += ord.String.Marshal(f.Contents, bs[n:])
	n += ord.String.Marshal(f.Summary, bs[n:])
	n += varint.Int.Marshal(int(f.SummaryMethod), bs[n:])
	n += stringSliceMUS.Marshal(f.Keywords, bs[n:])
	n += float64SliceMUS.Marshal(f.KeywordScores, bs[n:])
	n += varint.Int.Marshal(int(f.KeywordMethod), bs[n:])
	n += varint.Float64.Marshal(f.SummaryQuality, bs[n:])
	n += varint.Int.Marshal(int(f.SummaryLevel), bs[n:])
	n += varint.Float64.Marshal(f.KeywordQuality, bs[n:])
	n += varint.Int.Marshal(int(f.KeywordLevel), bs[n:])
	n += ord.Bool.Marshal(f.HasMetadata, bs[n:])
	n += marshalTime(f.ProcessedAt, bs[n:])
	n += marshalTime(f.InsertedAt, bs[n:])
	n += marshalTime(f.UpdatedAt, bs[n:])
	return n
}

func (fragmentSer) Unmarshal(bs []byte) (f Fragment, n int, err error) {
	var m int
	if f.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if f.Contents, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	if f.Summary, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	var v int
	if v, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	f.SummaryMethod = MethodKind(v)
	n += m
	if f.Keywords, m, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	if len(f.Keywords) == 0 {
		f.Keywords = nil
	}
	if f.KeywordScores, m, err = float64SliceMUS.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	if len(f.KeywordScores) == 0 {
		f.KeywordScores = nil
	}
	if v, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	f.KeywordMethod = MethodKind(v)
	n += m
	if f.SummaryQuality, m, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	if v, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	f.SummaryLevel = QualityLevel(v)
	n += m
	if f.KeywordQuality, m, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	if v, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	f.KeywordLevel = QualityLevel(v)
	n += m
	if f.HasMetadata, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	if f.ProcessedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	if f.InsertedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	if f.UpdatedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return f, n + m, err
	}
	n += m
	return f, n, nil
}

func (fragmentSer) Size(f Fragment) (size int) {
	size = ord.String.Size(f.Id)
	size += ord.String.Size(f.Contents)
	size += ord.String.Size(f.Summary)
	size += varint.Int.Size(int(f.SummaryMethod))
	size += stringSliceMUS.Size(f.Keywords)
	size += float64SliceMUS.Size(f.KeywordScores)
	size += varint.Int.Size(int(f.KeywordMethod))
	size += varint.Float64.Size(f.SummaryQuality)
	size += varint.Int.Size(int(f.SummaryLevel))
	size += varint.Float64.Size(f.KeywordQuality)
	size += varint.Int.Size(int(f.KeywordLevel))
	size += ord.Bool.Size(f.HasMetadata)
	size += sizeTime(f.ProcessedAt)
	size += sizeTime(f.InsertedAt)
	size += sizeTime(f.UpdatedAt)
	return size
}

func (s fragmentSer) Skip(bs []byte) (n int, err error) {
	f, n, err := s.Unmarshal(bs)
	_ = f
	return n, err
}
