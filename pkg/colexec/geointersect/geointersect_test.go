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

package geointersect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/container/geo"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/testutil"
	"github.com/axiondb/axion/pkg/vm/device"
)

func newHarness(t *testing.T) (*device.Device, *device.Stream) {
	t.Helper()
	rt := testutil.NewSequentialRuntime()
	d, err := rt.Device(0)
	require.NoError(t, err)
	s := device.NewStream(d)
	t.Cleanup(func() {
		s.Close()
		rt.Close()
	})
	return d, s
}

func unitSquareBatch(t *testing.T) geo.ShapeBatch {
	t.Helper()
	batch, err := geo.BuildShapeBatch([]geo.Shape{{
		Polygons: [][]types.GeoPoint{{
			{Lat: 0, Long: 0}, {Lat: 0, Long: 4}, {Lat: 4, Long: 4},
			{Lat: 4, Long: 0}, {Lat: 0, Long: 0},
		}},
	}})
	require.NoError(t, err)
	return batch
}

func pointsIterator(points []types.GeoPoint, nulls []uint64, iv []uint32) column.Iterator[types.GeoPoint] {
	s := testutil.MakeGeoSlice(points, nulls)
	return column.NewIterator[types.GeoPoint](&s, iv, 0)
}

func TestRunFilterKeepsMatchingPolarity(t *testing.T) {
	d, s := newHarness(t)
	batch := unitSquareBatch(t)

	points := []types.GeoPoint{
		{Lat: 1, Long: 1},  // in
		{Lat: 9, Long: 9},  // out
		{Lat: 2, Long: 3},  // in
		{Lat: -1, Long: 0}, // out
		{Lat: 3, Long: 1},  // in
	}
	iv := testutil.MakeIndexVector(5, 0)
	fk := make([]types.RecordID, 5)
	for j := range fk {
		fk[j] = types.RecordID{BatchID: 9, Index: uint32(j)}
	}
	it := pointsIterator(points, nil, iv)

	words := make([]uint32, 5*int(batch.TotalWords))
	ctx := NewContext(d, s, &batch, words)

	newSize := ctx.RunFilter(it, iv, [][]types.RecordID{fk}, 5, true)

	require.Equal(t, 3, newSize)
	require.Equal(t, []uint32{0, 2, 4}, iv[:newSize])
	// The foreign vector compacts in lockstep with the index vector.
	for i, want := range []uint32{0, 2, 4} {
		require.Equal(t, types.RecordID{BatchID: 9, Index: want}, fk[i])
	}
}

func TestRunFilterOppositePolarity(t *testing.T) {
	d, s := newHarness(t)
	batch := unitSquareBatch(t)

	points := []types.GeoPoint{
		{Lat: 1, Long: 1},
		{Lat: 9, Long: 9},
		{Lat: 2, Long: 3},
	}
	iv := testutil.MakeIndexVector(3, 0)
	it := pointsIterator(points, []uint64{2}, iv)

	words := make([]uint32, 3*int(batch.TotalWords))
	ctx := NewContext(d, s, &batch, words)

	// inOrOut=false keeps rows outside every shape; the null point counts
	// as outside.
	newSize := ctx.RunFilter(it, iv, nil, 3, false)

	require.Equal(t, 2, newSize)
	require.Equal(t, []uint32{1, 2}, iv[:newSize])
}

func TestRunFilterReusesPredicateScratch(t *testing.T) {
	d, s := newHarness(t)
	batch := unitSquareBatch(t)

	points := []types.GeoPoint{{Lat: 1, Long: 1}, {Lat: 9, Long: 9}}
	words := make([]uint32, 2*int(batch.TotalWords))
	ctx := NewContext(d, s, &batch, words)

	for pass := 0; pass < 3; pass++ {
		iv := testutil.MakeIndexVector(2, 0)
		it := pointsIterator(points, nil, iv)
		newSize := ctx.RunFilter(it, iv, nil, 2, true)
		require.Equal(t, 1, newSize, "pass %d", pass)
		require.Equal(t, uint32(0), iv[0], "pass %d", pass)
	}
}

func TestRunJoinWritesDimension(t *testing.T) {
	d, s := newHarness(t)
	batch := unitSquareBatch(t)

	points := []types.GeoPoint{
		{Lat: 1, Long: 1},
		{Lat: 9, Long: 9},
		{Lat: 2, Long: 2},
		{Lat: 2, Long: 2}, // null row
	}
	iv := testutil.MakeIndexVector(4, 0)
	it := pointsIterator(points, []uint64{3}, iv)

	words := make([]uint32, 4*int(batch.TotalWords))
	ctx := NewContext(d, s, &batch, words)

	dimValues := make([]uint8, 4)
	dimNulls := make([]uint8, 4)
	ctx.RunJoin(it, dimValues, dimNulls, 4)
	s.Sync()

	require.Equal(t, []uint8{1, 0, 1, 0}, dimValues)
	require.Equal(t, []uint8{1, 1, 1, 1}, dimNulls)

	// Running the join again over the same scratch does not flip anything:
	// the predicate is cleared per run.
	ctx.RunJoin(it, dimValues, dimNulls, 4)
	s.Sync()
	require.Equal(t, []uint8{1, 0, 1, 0}, dimValues)
	require.Equal(t, []uint8{1, 1, 1, 1}, dimNulls)
}

func TestRunJoinEmptyShapeBatch(t *testing.T) {
	d, s := newHarness(t)
	batch, err := geo.BuildShapeBatch(nil)
	require.NoError(t, err)

	points := []types.GeoPoint{{Lat: 1, Long: 1}}
	iv := testutil.MakeIndexVector(1, 0)
	it := pointsIterator(points, nil, iv)

	ctx := NewContext(d, s, &batch, nil)
	dimValues := []uint8{0}
	dimNulls := []uint8{0}
	ctx.RunJoin(it, dimValues, dimNulls, 1)
	s.Sync()

	require.Equal(t, []uint8{0}, dimValues)
	require.Equal(t, []uint8{1}, dimNulls)
}
