// Copyright 2022 AxionDB Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package geointersect drives the point-in-polygon kernel for the two geo
// operators: the filter path, which compacts the row index vector to the
// rows matching the requested polarity, and the join path, which projects
// containment into a dimension output. Both share one context holding the
// shape batch and the predicate scratch.
package geointersect

import (
	"github.com/axiondb/axion/pkg/common/bitmap"
	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/container/geo"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/vectorize/compact"
	"github.com/axiondb/axion/pkg/vectorize/geointersects"
	"github.com/axiondb/axion/pkg/vm/device"
)

// Context carries what both run paths share. The predicate words are
// caller-owned scratch sized rows x shapes.TotalWords; the context zeroes
// them before every run.
type Context struct {
	shapes    *geo.ShapeBatch
	predicate bitmap.Bitmap
	device    *device.Device
	stream    *device.Stream
}

func NewContext(d *device.Device, s *device.Stream, shapes *geo.ShapeBatch, predicateWords []uint32) Context {
	return Context{
		shapes:    shapes,
		predicate: bitmap.FromWords(predicateWords, shapes.TotalWords),
		device:    d,
		stream:    s,
	}
}

// RunFilter executes the intersection kernel, then compacts indexVector and
// the foreign RecordID vectors in lockstep, keeping a row iff its
// containment matches inOrOut. It synchronizes the stream and returns the
// new row count; the count is data dependent, so the call blocks like every
// size-returning stage.
func (c *Context) RunFilter(points column.ValueIterator[types.GeoPoint], indexVector []uint32,
	fks [][]types.RecordID, size int, inOrOut bool) int {
	c.stream.Submit(func() {
		c.predicate.Clear(int32(size))
	})
	c.stream.Submit(func() {
		geointersects.Run(c.device, c.shapes, points, size, c.predicate)
	})
	newSize := 0
	c.stream.Submit(func() {
		newSize = compact.IndexWithForeign(func(j int) bool {
			return (c.predicate.FirstShape(int32(j)) >= 0) == inOrOut
		}, indexVector, fks, size)
	})
	c.stream.Sync()
	return newSize
}

// RunJoin executes the intersection kernel with polarity fixed to
// "contained" and projects the result into the geo dimension: slot j gets
// dimValues[j] = 1 when row j lies in any shape, keeps its old value
// otherwise, and dimNulls[j] = 1 unconditionally. The ops are left on the
// stream; callers sync before reading the dimension buffers.
func (c *Context) RunJoin(points column.ValueIterator[types.GeoPoint],
	dimValues []uint8, dimNulls []uint8, size int) {
	c.stream.Submit(func() {
		c.predicate.Clear(int32(size))
	})
	c.stream.Submit(func() {
		geointersects.Run(c.device, c.shapes, points, size, c.predicate)
	})
	c.stream.Submit(func() {
		c.device.ForEach(size, func(j int) {
			if c.predicate.FirstShape(int32(j)) >= 0 {
				dimValues[j] = 1
			}
			dimNulls[j] = 1
		})
	})
}
