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

package query

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/axiondb/axion/pkg/colexec"
	"github.com/axiondb/axion/pkg/colexec/binder"
	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/container/types"
	"github.com/axiondb/axion/pkg/testutil"
	"github.com/axiondb/axion/pkg/vm/device"
)

func TestUnaryFilterEntry(t *testing.T) {
	useRuntime(t, testutil.NewSequentialRuntime())
	s := newStream(t)

	convey.Convey("unary filter entry", t, func() {
		slice := testutil.MakeFixedSlice(types.T_int32, []int32{5, 0, 6, 7}, []uint64{2})
		in := binder.NewVectorPartyInput(&slice)
		iv := testutil.MakeIndexVector(4, 0)
		fk := []types.RecordID{
			{BatchID: 1, Index: 0}, {BatchID: 1, Index: 1},
			{BatchID: 1, Index: 2}, {BatchID: 1, Index: 3},
		}
		pred := make([]uint8, 4)

		convey.Convey("keeps non-null rows and compacts the foreign vector", func() {
			newSize, err := UnaryFilter(&in, iv, pred, 4, [][]types.RecordID{fk}, 1, 0,
				colexec.UnaryIsNotNull, s, 0)
			convey.So(err, convey.ShouldBeNil)
			convey.So(newSize, convey.ShouldEqual, 3)
			convey.So(iv[:newSize], convey.ShouldResemble, []uint32{0, 1, 3})
			convey.So(fk[:newSize], convey.ShouldResemble, []types.RecordID{
				{BatchID: 1, Index: 0}, {BatchID: 1, Index: 1}, {BatchID: 1, Index: 3},
			})
		})

		convey.Convey("rejects more foreign tables than the engine compacts", func() {
			newSize, err := UnaryFilter(&in, iv, pred, 4, make([][]types.RecordID, 9), 9, 0,
				colexec.UnaryIsNotNull, s, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedArity), convey.ShouldBeTrue)
			convey.So(newSize, convey.ShouldEqual, 0)
			convey.So(iv, convey.ShouldResemble, []uint32{0, 1, 2, 3})
		})

		convey.Convey("rejects a count above the vectors provided", func() {
			_, err := UnaryFilter(&in, iv, pred, 4, nil, 1, 0, colexec.UnaryIsNotNull, s, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrInvalidArg), convey.ShouldBeTrue)
		})

		convey.Convey("rejects predicate scratch shorter than the batch", func() {
			_, err := UnaryFilter(&in, iv, make([]uint8, 2), 4, nil, 0, 0,
				colexec.UnaryIsNotNull, s, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrInvalidArg), convey.ShouldBeTrue)
		})

		convey.Convey("rejects arithmetic functors", func() {
			newSize, err := UnaryFilter(&in, iv, pred, 4, nil, 0, 0, colexec.UnaryNegate, s, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedFunctor), convey.ShouldBeTrue)
			convey.So(newSize, convey.ShouldEqual, 0)
		})
	})
}

func TestBinaryFilterEntry(t *testing.T) {
	useRuntime(t, testutil.NewSequentialRuntime())
	s := newStream(t)

	convey.Convey("binary filter entry", t, func() {
		iv := testutil.MakeIndexVector(4, 0)
		pred := make([]uint8, 4)
		three := binder.NewConstantInput(types.MakeValue(int32(3)), types.T_int32)

		convey.Convey("compares a widened column against a constant", func() {
			slice := testutil.MakeFixedSlice(types.T_uint16, []uint16{1, 9, 4, 2}, nil)
			in := binder.NewVectorPartyInput(&slice)
			newSize, err := BinaryFilter(&in, &three, iv, pred, 4, nil, 0, 0,
				colexec.BinaryGreaterThan, s, 0)
			convey.So(err, convey.ShouldBeNil)
			convey.So(newSize, convey.ShouldEqual, 2)
			convey.So(iv[:newSize], convey.ShouldResemble, []uint32{1, 2})
		})

		convey.Convey("a null operand fails the predicate", func() {
			slice := testutil.MakeFixedSlice(types.T_uint16, []uint16{1, 9, 4, 2}, []uint64{1})
			in := binder.NewVectorPartyInput(&slice)
			newSize, err := BinaryFilter(&in, &three, iv, pred, 4, nil, 0, 0,
				colexec.BinaryGreaterThan, s, 0)
			convey.So(err, convey.ShouldBeNil)
			convey.So(newSize, convey.ShouldEqual, 1)
			convey.So(iv[:newSize], convey.ShouldResemble, []uint32{2})
		})

		convey.Convey("rejects arithmetic functors", func() {
			slice := testutil.MakeFixedSlice(types.T_uint16, []uint16{1, 9, 4, 2}, nil)
			in := binder.NewVectorPartyInput(&slice)
			newSize, err := BinaryFilter(&in, &three, iv, pred, 4, nil, 0, 0,
				colexec.BinaryPlus, s, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedFunctor), convey.ShouldBeTrue)
			convey.So(newSize, convey.ShouldEqual, 0)
		})
	})
}

func TestUnaryTransformEntry(t *testing.T) {
	useRuntime(t, testutil.NewSequentialRuntime())
	s := newStream(t)

	convey.Convey("unary transform entry", t, func() {
		sv := testutil.MakeScratch(types.T_int32, []int32{-7, 8, 0}, []uint64{2})
		in := binder.NewScratchInput(&sv)
		iv := testutil.MakeIndexVector(3, 0)

		convey.Convey("negates into a dimension output", func() {
			out := binder.NewDimensionOutput(binder.DimensionOutputVector{
				DimValues: make([]byte, 3*4),
				DimNulls:  make([]uint8, 3),
				DataType:  types.T_int32,
			})
			written, err := UnaryTransform(&in, &out, iv, 3, 0, colexec.UnaryNegate, s, 0)
			convey.So(err, convey.ShouldBeNil)
			convey.So(written, convey.ShouldEqual, 3)

			s.Sync()
			convey.So(types.DecodeSlice[int32](out.Dimension.DimValues),
				convey.ShouldResemble, []int32{7, -8, 0})
			convey.So(out.Dimension.DimNulls, convey.ShouldResemble, []uint8{1, 1, 0})
		})

		convey.Convey("rejects output types outside the transform set", func() {
			out := binder.NewDimensionOutput(binder.DimensionOutputVector{
				DimValues: make([]byte, 3*2),
				DimNulls:  make([]uint8, 3),
				DataType:  types.T_uint16,
			})
			written, err := UnaryTransform(&in, &out, iv, 3, 0, colexec.UnaryNoop, s, 0)
			convey.So(axerr.IsAxErrCode(err, axerr.ErrUnsupportedType), convey.ShouldBeTrue)
			convey.So(written, convey.ShouldEqual, 0)
		})
	})
}

func TestBinaryTransformEntry(t *testing.T) {
	useRuntime(t, testutil.NewSequentialRuntime())
	s := newStream(t)

	convey.Convey("binary transform folds into a measure across batches", t, func() {
		buf := make([]byte, 3*8)
		mv := binder.MeasureOutputVector{
			Values:   buf,
			DataType: types.T_int64,
			AggFunc:  colexec.AggSumSigned,
		}
		convey.So(InitMeasureVector(mv, 3), convey.ShouldBeNil)
		out := binder.NewMeasureOutput(mv)

		slice := testutil.MakeFixedSlice(types.T_int32, []int32{1, 2, 3}, nil)
		in := binder.NewVectorPartyInput(&slice)
		ten := binder.NewConstantInput(types.MakeValue(int32(10)), types.T_int32)
		iv := testutil.MakeIndexVector(3, 0)

		written, err := BinaryTransform(&in, &ten, &out, iv, 3, 0, colexec.BinaryPlus, s, 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(written, convey.ShouldEqual, 3)
		s.Sync()
		convey.So(types.DecodeSlice[int64](buf), convey.ShouldResemble, []int64{11, 12, 13})

		// The second batch accumulates on top of the first.
		written, err = BinaryTransform(&in, &ten, &out, iv, 3, 0, colexec.BinaryPlus, s, 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(written, convey.ShouldEqual, 3)
		s.Sync()
		convey.So(types.DecodeSlice[int64](buf), convey.ShouldResemble, []int64{22, 24, 26})
	})
}

func TestScalarEntriesParallelMatchSequential(t *testing.T) {
	const rows = 600
	values := make([]int32, rows)
	var nulls []uint64
	for j := 0; j < rows; j++ {
		values[j] = int32(j % 17)
		if j%13 == 0 {
			nulls = append(nulls, uint64(j))
		}
	}

	runCase := func(rt *device.Runtime) ([]uint32, []int64) {
		prev := SetRuntime(rt)
		defer func() {
			SetRuntime(prev)
			rt.Close()
		}()
		d, err := GetRuntime().Device(0)
		if err != nil {
			t.Fatal(err)
		}
		s := device.NewStream(d)
		defer s.Close()

		slice := testutil.MakeFixedSlice(types.T_int32, values, nulls)
		in := binder.NewVectorPartyInput(&slice)
		nine := binder.NewConstantInput(types.MakeValue(int32(9)), types.T_int32)
		iv := make([]uint32, rows)
		if err := InitIndexVector(iv, 0, rows, s, 0); err != nil {
			t.Fatal(err)
		}
		s.Sync()

		newSize, err := BinaryFilter(&in, &nine, iv, make([]uint8, rows), rows, nil, 0, 0,
			colexec.BinaryGreaterThanOrEqual, s, 0)
		if err != nil {
			t.Fatal(err)
		}

		buf := make([]byte, newSize*8)
		mv := binder.MeasureOutputVector{Values: buf, DataType: types.T_int64, AggFunc: colexec.AggSumSigned}
		if err := InitMeasureVector(mv, newSize); err != nil {
			t.Fatal(err)
		}
		out := binder.NewMeasureOutput(mv)
		if _, err := UnaryTransform(&in, &out, iv, newSize, 0, colexec.UnaryNoop, s, 0); err != nil {
			t.Fatal(err)
		}
		s.Sync()

		return append([]uint32(nil), iv[:newSize]...),
			append([]int64(nil), types.DecodeSlice[int64](buf)...)
	}

	seqIV, seqSums := runCase(testutil.NewSequentialRuntime())
	parIV, parSums := runCase(testutil.NewParallelRuntime(4))
	if len(seqIV) == 0 {
		t.Fatal("filter kept no rows")
	}
	convey.Convey("host sequential and parallel agree", t, func() {
		convey.So(parIV, convey.ShouldResemble, seqIV)
		convey.So(parSums, convey.ShouldResemble, seqSums)
	})
}
