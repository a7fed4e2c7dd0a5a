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

package binder

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/column"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/testutil"
)

func TestBindValueRepresentations(t *testing.T) {
	convey.Convey("BindValue dispatches on the representation tag", t, func() {
		iv := testutil.MakeIndexVector(3, 0)

		convey.Convey("constant", func() {
			in := NewConstantInput(types.MakeValue(int32(7)), types.T_int32)
			it, err := BindValue[int32](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(2)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 7)
		})

		convey.Convey("null constant", func() {
			in := NewConstantInput(types.DataValue{}, types.T_int32)
			it, err := BindValue[int32](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			_, ok := it.At(0)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("scratch space", func() {
			sv := testutil.MakeScratch(types.T_float64, []float64{1, 2, 3}, []uint64{1})
			in := NewScratchInput(&sv)
			it, err := BindValue[float64](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(0)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 1)
			_, ok = it.At(1)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("vector party", func() {
			s := testutil.MakeFixedSlice(types.T_int64, []int64{-1, -2, -3}, nil)
			in := NewVectorPartyInput(&s)
			it, err := BindValue[int64](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(2)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, -3)
		})

		convey.Convey("foreign column", func() {
			fc := testutil.MakeForeignColumn(types.T_uint32,
				[]types.RecordID{{BatchID: 0, Index: 0}, {BatchID: 0, Index: 1}, {BatchID: 0, Index: 2}},
				[][]uint32{{5, 6, 7}}, nil, 0, 3, types.DataValue{})
			in := NewForeignInput(&fc)
			it, err := BindValue[uint32](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(1)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 6)
		})
	})
}

func TestBindBool(t *testing.T) {
	convey.Convey("BindBool", t, func() {
		iv := testutil.MakeIndexVector(2, 0)

		convey.Convey("vector party bools are bit addressed", func() {
			s := testutil.MakeBoolSlice([]bool{true, false}, nil)
			in := NewVectorPartyInput(&s)
			it, err := BindBool(&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(0)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldBeTrue)
		})

		convey.Convey("constant", func() {
			in := NewConstantInput(types.MakeValue(true), types.T_bool)
			it, err := BindBool(&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(1)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldBeTrue)
		})

		convey.Convey("scratch space is rejected", func() {
			sv := testutil.MakeScratch(types.T_int32, []int32{1}, nil)
			in := NewScratchInput(&sv)
			_, err := BindBool(&in, iv, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrInvalidInputRepresentation), convey.ShouldBeTrue)
		})
	})
}

func TestBindGeoPoints(t *testing.T) {
	convey.Convey("BindGeoPoints", t, func() {
		iv := testutil.MakeIndexVector(2, 0)
		pts := []types.GeoPoint{{Lat: 1, Long: 2}, {Lat: 3, Long: 4}}

		convey.Convey("vector party points", func() {
			s := testutil.MakeGeoSlice(pts, nil)
			in := NewVectorPartyInput(&s)
			it, err := BindGeoPoints(&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(1)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v.Lat, convey.ShouldEqual, 3)
		})

		convey.Convey("foreign points", func() {
			fc := testutil.MakeForeignColumn(types.T_geopoint,
				[]types.RecordID{{BatchID: 0, Index: 1}, {BatchID: 0, Index: 0}},
				[][]types.GeoPoint{pts}, nil, 0, 2, types.DataValue{})
			in := NewForeignInput(&fc)
			it, err := BindGeoPoints(&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(0)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v.Long, convey.ShouldEqual, 4)
		})

		convey.Convey("non-geo input type", func() {
			s := testutil.MakeFixedSlice(types.T_int32, []int32{1, 2}, nil)
			in := NewVectorPartyInput(&s)
			_, err := BindGeoPoints(&in, iv, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedType), convey.ShouldBeTrue)
		})

		convey.Convey("constant representation", func() {
			in := NewConstantInput(types.MakeValue(types.GeoPoint{}), types.T_geopoint)
			_, err := BindGeoPoints(&in, iv, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrInvalidInputRepresentation), convey.ShouldBeTrue)
		})

		convey.Convey("scratch representation", func() {
			sv := testutil.MakeScratch(types.T_geopoint, pts, nil)
			in := NewScratchInput(&sv)
			_, err := BindGeoPoints(&in, iv, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrInvalidInputRepresentation), convey.ShouldBeTrue)
		})
	})
}

func TestBindNumericConversion(t *testing.T) {
	convey.Convey("BindNumeric converts at the iterator boundary", t, func() {
		iv := testutil.MakeIndexVector(3, 0)

		convey.Convey("narrow ints widen", func() {
			s := testutil.MakeFixedSlice(types.T_int8, []int8{-5, 0, 7}, []uint64{1})
			in := NewVectorPartyInput(&s)
			it, err := BindNumeric[int32](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)

			v, ok := it.At(0)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, -5)
			_, ok = it.At(1)
			convey.So(ok, convey.ShouldBeFalse)
			v, _ = it.At(2)
			convey.So(v, convey.ShouldEqual, 7)
		})

		convey.Convey("bool columns become 0/1", func() {
			s := testutil.MakeBoolSlice([]bool{true, false, true}, nil)
			in := NewVectorPartyInput(&s)
			it, err := BindNumeric[uint32](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(0)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 1)
			v, _ = it.At(1)
			convey.So(v, convey.ShouldEqual, 0)
		})

		convey.Convey("scratch vectors convert too", func() {
			sv := testutil.MakeScratch(types.T_uint16, []uint16{40000, 1, 2}, nil)
			in := NewScratchInput(&sv)
			it, err := BindNumeric[int64](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(0)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 40000)
		})

		convey.Convey("constants convert from their tagged type", func() {
			in := NewConstantInput(types.MakeValue(float64(2.5)), types.T_float64)
			it, err := BindNumeric[float32](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(0)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, float32(2.5))

			bin := NewConstantInput(types.MakeValue(true), types.T_bool)
			bit, err := BindNumeric[uint32](&bin, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			bv, _ := bit.At(0)
			convey.So(bv, convey.ShouldEqual, 1)
		})

		convey.Convey("foreign columns convert through the join", func() {
			fc := testutil.MakeForeignColumn(types.T_int16,
				[]types.RecordID{{BatchID: 0, Index: 2}, {BatchID: 0, Index: 0}, {BatchID: 5, Index: 0}},
				[][]int16{{-100, 0, 300}}, nil, 0, 3, types.MakeValue(int16(9)))
			in := NewForeignInput(&fc)
			it, err := BindNumeric[float64](&in, iv, 0)
			convey.So(err, convey.ShouldBeNil)
			v, ok := it.At(0)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 300)
			v, _ = it.At(2)
			convey.So(v, convey.ShouldEqual, 9)
		})

		convey.Convey("non-numeric element types are rejected", func() {
			s := testutil.MakeGeoSlice([]types.GeoPoint{{Lat: 1, Long: 1}}, nil)
			in := NewVectorPartyInput(&s)
			_, err := BindNumeric[int32](&in, testutil.MakeIndexVector(1, 0), 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedType), convey.ShouldBeTrue)

			cin := NewConstantInput(types.MakeValue(types.Uuid{}), types.T_uuid)
			_, err = BindNumeric[int32](&cin, iv, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedType), convey.ShouldBeTrue)
		})
	})
}

func TestPromotionLadder(t *testing.T) {
	convey.Convey("PromoteUnary", t, func() {
		cases := map[types.T]types.T{
			types.T_bool:    types.T_uint32,
			types.T_int8:    types.T_int32,
			types.T_int16:   types.T_int32,
			types.T_int32:   types.T_int32,
			types.T_uint8:   types.T_uint32,
			types.T_uint16:  types.T_uint32,
			types.T_uint32:  types.T_uint32,
			types.T_int64:   types.T_int64,
			types.T_uint64:  types.T_uint64,
			types.T_float32: types.T_float32,
			types.T_float64: types.T_float64,
		}
		for in, want := range cases {
			got, err := PromoteUnary(in)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, want)
		}

		_, err := PromoteUnary(types.T_geopoint)
		convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedType), convey.ShouldBeTrue)
	})

	convey.Convey("Promote picks the higher rung", t, func() {
		cases := []struct {
			a, b, want types.T
		}{
			{types.T_int8, types.T_int16, types.T_int32},
			{types.T_int32, types.T_uint32, types.T_uint32},
			{types.T_uint8, types.T_int64, types.T_int64},
			{types.T_int64, types.T_uint64, types.T_uint64},
			{types.T_uint64, types.T_float32, types.T_float32},
			{types.T_int32, types.T_float64, types.T_float64},
			{types.T_bool, types.T_bool, types.T_uint32},
		}
		for _, c := range cases {
			got, err := Promote(c.a, c.b)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, c.want)

			// Promotion is symmetric.
			got, err = Promote(c.b, c.a)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, c.want)
		}

		_, err := Promote(types.T_int32, types.T_uuid)
		convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedType), convey.ShouldBeTrue)
	})
}

func TestInputVectorAccessors(t *testing.T) {
	convey.Convey("DataType and Absent", t, func() {
		s := testutil.MakeFixedSlice(types.T_int32, []int32{1}, nil)
		vp := NewVectorPartyInput(&s)
		convey.So(vp.DataType(), convey.ShouldEqual, types.T_int32)
		convey.So(vp.Absent(), convey.ShouldBeFalse)

		missing := column.Slice{DataType: types.T_int32}
		gone := NewVectorPartyInput(&missing)
		convey.So(gone.Absent(), convey.ShouldBeTrue)

		// A missing column with a configured default still has data.
		withDefault := column.Slice{DataType: types.T_int32, Default: types.MakeValue(int32(1))}
		in := NewVectorPartyInput(&withDefault)
		convey.So(in.Absent(), convey.ShouldBeFalse)

		c := NewConstantInput(types.DataValue{}, types.T_float32)
		convey.So(c.DataType(), convey.ShouldEqual, types.T_float32)
		convey.So(c.Absent(), convey.ShouldBeFalse)

		sv := testutil.MakeScratch(types.T_uint64, []uint64{1}, nil)
		sc := NewScratchInput(&sv)
		convey.So(sc.DataType(), convey.ShouldEqual, types.T_uint64)

		convey.So(VectorPartyInput.String(), convey.ShouldEqual, "VectorPartyInput")
		convey.So(InputKind(99).String(), convey.ShouldEqual, "InvalidInput")
	})

	convey.Convey("OutputVector DataType", t, func() {
		m := NewMeasureOutput(MeasureOutputVector{DataType: types.T_int64})
		convey.So(m.DataType(), convey.ShouldEqual, types.T_int64)

		d := NewDimensionOutput(DimensionOutputVector{DataType: types.T_uint8})
		convey.So(d.DataType(), convey.ShouldEqual, types.T_uint8)
	})
}
