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

package geointersects

import (
	"github.com/axiondb/axion/pkg/common/bitmap"
	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/container/geo"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/vm/device"
)

// Run evaluates point-in-polygon containment for every (row, shape) pair and
// accumulates one predicate bit per pair.
//
// The pass is one flat for-each over size*TotalNumPoints logical elements,
// element e handling row e%size and shape point e/size. Each element tests
// the ray-casting parity of the row's coordinate against the single polygon
// edge ending at its point and, on a crossing, toggles the row's bit for that
// shape. Toggles commute, so element order is free; every row's bits are
// final once the for-each returns.
//
// Boundary convention: the classic half-open parity rule. Edges are taken
// with a strict greater-than on latitude sides and a strict less-than on the
// crossing longitude, so a point on a shape's upper boundary tests outside
// while one on its lower boundary tests inside. Golden tests pin this down.
func Run[I column.ValueIterator[types.GeoPoint]](
	d *device.Device,
	shapes *geo.ShapeBatch,
	points I,
	size int,
	predicate bitmap.Bitmap,
) {
	lats, longs, shapeIndexes := shapes.Lats, shapes.Longs, shapes.ShapeIndexes
	d.ForEach(size*int(shapes.TotalNumPoints), func(e int) {
		row := e % size
		p := e / size
		if p == 0 {
			// No edge ends at the first point of the batch.
			return
		}
		if lats[p] == geo.PolygonBreak || lats[p-1] == geo.PolygonBreak {
			// Separator entry, or the first point after one.
			return
		}
		shape := shapeIndexes[p]
		if shapeIndexes[p-1] != shape {
			// Edge would span two shapes.
			return
		}
		pt, valid := points.At(row)
		if !valid {
			return
		}
		lat1, long1 := lats[p-1], longs[p-1]
		lat2, long2 := lats[p], longs[p]
		if (lat1 > pt.Lat) != (lat2 > pt.Lat) &&
			pt.Long < (long2-long1)*(pt.Lat-lat1)/(lat2-lat1)+long1 {
			predicate.AtomicToggle(int32(row), int32(shape))
		}
	})
}
