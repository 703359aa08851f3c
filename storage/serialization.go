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


package storage

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/bomvault/core"
)

// Hand-written MUS serializers for the stored record types. Field order is
// part of the on-disk format; append new fields at the end only.

// IDMUS serializes core.ID values.
var IDMUS = idMUS{}

// ApplicationMUS serializes core.Application records.
var ApplicationMUS = applicationMUS{}

// ComponentMUS serializes core.Component records.
var ComponentMUS = componentMUS{}

// ComponentRefMUS serializes core.ComponentRef link rows.
var ComponentRefMUS = componentRefMUS{}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	return id, err
}

// MarshalApplication serializes an Application to bytes.
func MarshalApplication(app *core.Application) []byte {
	buf := make([]byte, ApplicationMUS.Size(*app))
	ApplicationMUS.Marshal(*app, buf)
	return buf
}

// UnmarshalApplication deserializes an Application from bytes.
func UnmarshalApplication(data []byte) (*core.Application, error) {
	app, _, err := ApplicationMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// MarshalComponent serializes a Component to bytes.
func MarshalComponent(comp *core.Component) []byte {
	buf := make([]byte, ComponentMUS.Size(*comp))
	ComponentMUS.Marshal(*comp, buf)
	return buf
}

// UnmarshalComponent deserializes a Component from bytes.
func UnmarshalComponent(data []byte) (*core.Component, error) {
	comp, _, err := ComponentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

// MarshalComponentRef serializes a ComponentRef to bytes.
func MarshalComponentRef(ref *core.ComponentRef) []byte {
	buf := make([]byte, ComponentRefMUS.Size(*ref))
	ComponentRefMUS.Marshal(*ref, buf)
	return buf
}

// UnmarshalComponentRef deserializes a ComponentRef from bytes.
func UnmarshalComponentRef(data []byte) (*core.ComponentRef, error) {
	ref, _, err := ComponentRefMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

type idMUS struct{}

func (idMUS) Marshal(id core.ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idMUS) Size(id core.ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type applicationMUS struct{}

func (applicationMUS) Marshal(app core.Application, bs []byte) (n int) {
	n = IDMUS.Marshal(app.Id, bs)
	n += IDMUS.Marshal(app.OwnerId, bs[n:])
	n += ord.String.Marshal(app.Name, bs[n:])
	n += ord.String.Marshal(app.Version, bs[n:])
	n += ord.String.Marshal(app.Platform, bs[n:])
	n += ord.String.Marshal(app.BinaryType, bs[n:])
	n += ord.String.Marshal(app.Manufacturer, bs[n:])
	n += ord.String.Marshal(app.Supplier, bs[n:])
	n += ord.String.Marshal(app.OriginalFilename, bs[n:])
	n += varint.Int64.Marshal(app.FileSize, bs[n:])
	n += ord.String.Marshal(app.FileHash, bs[n:])
	n += varint.Int.Marshal(int(app.Status), bs[n:])
	n += ord.String.Marshal(app.ErrorMessage, bs[n:])
	n += ord.String.Marshal(app.SBOMFormat, bs[n:])
	n += ord.ByteSlice.Marshal(app.CycloneDX, bs[n:])
	n += ord.ByteSlice.Marshal(app.SPDX, bs[n:])
	n += varint.Int.Marshal(app.ComponentCount, bs[n:])
	n += raw.TimeUnixMicro.Marshal(app.CreatedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(app.AnalyzedAt, bs[n:])
	return n
}

func (applicationMUS) Unmarshal(bs []byte) (app core.Application, n int, err error) {
	var n1 int
	app.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	app.OwnerId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.Version, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.Platform, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.BinaryType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.Manufacturer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.Supplier, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.OriginalFilename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.FileSize, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.FileHash, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var status int
	status, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.Status = core.Status(status)
	app.ErrorMessage, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.SBOMFormat, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.CycloneDX, n1, err = ord.ByteSlice.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.SPDX, n1, err = ord.ByteSlice.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.ComponentCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	app.AnalyzedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (applicationMUS) Size(app core.Application) (size int) {
	size = IDMUS.Size(app.Id)
	size += IDMUS.Size(app.OwnerId)
	size += ord.String.Size(app.Name)
	size += ord.String.Size(app.Version)
	size += ord.String.Size(app.Platform)
	size += ord.String.Size(app.BinaryType)
	size += ord.String.Size(app.Manufacturer)
	size += ord.String.Size(app.Supplier)
	size += ord.String.Size(app.OriginalFilename)
	size += varint.Int64.Size(app.FileSize)
	size += ord.String.Size(app.FileHash)
	size += varint.Int.Size(int(app.Status))
	size += ord.String.Size(app.ErrorMessage)
	size += ord.String.Size(app.SBOMFormat)
	size += ord.ByteSlice.Size(app.CycloneDX)
	size += ord.ByteSlice.Size(app.SPDX)
	size += varint.Int.Size(app.ComponentCount)
	size += raw.TimeUnixMicro.Size(app.CreatedAt)
	size += raw.TimeUnixMicro.Size(app.AnalyzedAt)
	return size
}

type componentMUS struct{}

func (componentMUS) Marshal(comp core.Component, bs []byte) (n int) {
	n = IDMUS.Marshal(comp.Id, bs)
	n += IDMUS.Marshal(comp.OwnerId, bs[n:])
	n += ord.String.Marshal(comp.Name, bs[n:])
	n += ord.String.Marshal(comp.Version, bs[n:])
	n += ord.String.Marshal(comp.Type, bs[n:])
	n += ord.String.Marshal(comp.Language, bs[n:])
	n += ord.String.Marshal(comp.License, bs[n:])
	n += ord.String.Marshal(comp.PURL, bs[n:])
	n += ord.String.Marshal(comp.CPE, bs[n:])
	n += ord.String.Marshal(comp.Description, bs[n:])
	n += ord.String.Marshal(comp.Supplier, bs[n:])
	n += ord.String.Marshal(comp.Author, bs[n:])
	n += ord.String.Marshal(comp.Homepage, bs[n:])
	n += ord.String.Marshal(comp.RepositoryURL, bs[n:])
	n += raw.TimeUnixMicro.Marshal(comp.CreatedAt, bs[n:])
	return n
}

func (componentMUS) Unmarshal(bs []byte) (comp core.Component, n int, err error) {
	var n1 int
	comp.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	comp.OwnerId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.Version, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.Type, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.Language, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.License, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.PURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.CPE, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.Supplier, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.Author, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.Homepage, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.RepositoryURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	comp.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (componentMUS) Size(comp core.Component) (size int) {
	size = IDMUS.Size(comp.Id)
	size += IDMUS.Size(comp.OwnerId)
	size += ord.String.Size(comp.Name)
	size += ord.String.Size(comp.Version)
	size += ord.String.Size(comp.Type)
	size += ord.String.Size(comp.Language)
	size += ord.String.Size(comp.License)
	size += ord.String.Size(comp.PURL)
	size += ord.String.Size(comp.CPE)
	size += ord.String.Size(comp.Description)
	size += ord.String.Size(comp.Supplier)
	size += ord.String.Size(comp.Author)
	size += ord.String.Size(comp.Homepage)
	size += ord.String.Size(comp.RepositoryURL)
	size += raw.TimeUnixMicro.Size(comp.CreatedAt)
	return size
}

type componentRefMUS struct{}

func (componentRefMUS) Marshal(ref core.ComponentRef, bs []byte) (n int) {
	n = IDMUS.Marshal(ref.ComponentId, bs)
	n += ord.String.Marshal(ref.RelationshipType, bs[n:])
	n += varint.Int.Marshal(ref.Depth, bs[n:])
	n += raw.Float64.Marshal(ref.Confidence, bs[n:])
	n += ord.String.Marshal(ref.DetectedBy, bs[n:])
	n += raw.TimeUnixMicro.Marshal(ref.CreatedAt, bs[n:])
	return n
}

func (componentRefMUS) Unmarshal(bs []byte) (ref core.ComponentRef, n int, err error) {
	var n1 int
	ref.ComponentId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	ref.RelationshipType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	ref.Depth, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	ref.Confidence, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	ref.DetectedBy, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	ref.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (componentRefMUS) Size(ref core.ComponentRef) (size int) {
	size = IDMUS.Size(ref.ComponentId)
	size += ord.String.Size(ref.RelationshipType)
	size += varint.Int.Size(ref.Depth)
	size += raw.Float64.Size(ref.Confidence)
	size += ord.String.Size(ref.DetectedBy)
	size += raw.TimeUnixMicro.Size(ref.CreatedAt)
	return size
}
