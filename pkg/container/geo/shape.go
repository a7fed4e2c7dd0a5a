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

package geo

import (
	"math"

	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/common/bitmap"
	"github.com/axiondb/axion/pkg/container/types"
)

// PolygonBreak is the placeholder coordinate separating polygons of one
// shape inside the flattened point arrays. The intersect kernel skips any
// edge touching a break entry.
const PolygonBreak float32 = math.MaxFloat32

// MaxShapes bounds one batch: the join path writes the matched shape into a
// one-byte dimension value, so shape indices must fit uint8.
const MaxShapes = 256

// Shape is one geo fence: an outer ring plus optional hole/island rings.
// Rings follow the closed-ring convention, first point repeated at the end.
type Shape struct {
	Polygons [][]types.GeoPoint
}

// ShapeBatch is the flattened, kernel-ready form of a set of shapes: one
// float32 lat/long pair per point with PolygonBreak entries between polygons
// of the same shape, and the owning shape index per point. Immutable input.
type ShapeBatch struct {
	Lats           []float32
	Longs          []float32
	ShapeIndexes   []uint8
	NumShapes      int32
	TotalNumPoints int32
	// TotalWords is how many uint32 predicate words one row needs to hold a
	// containment bit per shape.
	TotalWords int32
}

func (b *ShapeBatch) IsEmpty() bool {
	return b.TotalNumPoints == 0
}

// appendShape flattens one shape, writing a break entry before every polygon
// after the first, and returns how many entries were appended.
func appendShape(lats, longs []float32, s Shape) ([]float32, []float32, int) {
	numPoints := 0
	for i, polygon := range s.Polygons {
		if len(polygon) > 0 && i > 0 {
			lats = append(lats, PolygonBreak)
			longs = append(longs, PolygonBreak)
			numPoints++
		}
		for _, point := range polygon {
			lats = append(lats, point.Lat)
			longs = append(longs, point.Long)
			numPoints++
		}
	}
	return lats, longs, numPoints
}

// BuildShapeBatch flattens shapes for the intersect kernel. Shapes with no
// points are dropped; indices in the batch number the remaining shapes in
// input order.
func BuildShapeBatch(shapes []Shape) (ShapeBatch, error) {
	var batch ShapeBatch
	numPointsPerShape := make([]int32, 0, len(shapes))
	for _, s := range shapes {
		var numPoints int
		batch.Lats, batch.Longs, numPoints = appendShape(batch.Lats, batch.Longs, s)
		if numPoints > 0 {
			batch.TotalNumPoints += int32(numPoints)
			numPointsPerShape = append(numPointsPerShape, int32(numPoints))
		}
	}
	if len(numPointsPerShape) > MaxShapes {
		return ShapeBatch{}, axerr.NewInvalidArg("shapes", len(numPointsPerShape))
	}

	batch.ShapeIndexes = make([]uint8, batch.TotalNumPoints)
	pointIndex := 0
	for shapeIndex, numPoints := range numPointsPerShape {
		for i := int32(0); i < numPoints; i++ {
			batch.ShapeIndexes[pointIndex] = uint8(shapeIndex)
			pointIndex++
		}
	}
	batch.NumShapes = int32(len(numPointsPerShape))
	batch.TotalWords = bitmap.WordsFor(batch.NumShapes)
	return batch, nil
}
