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

package bitmap

import (
	"math/bits"
	"sync/atomic"
)

// Bitmap is a packed predicate bitset: one bit per (row, shape) pair, laid
// out as wordsPerRow uint32 words for each row. It borrows a caller-owned
// word buffer and never allocates; the buffer is reused scratch across calls.
//
// Trailing bits of the last word in a row beyond the shape count must stay
// zero; every writer below preserves that.
type Bitmap struct {
	words       []uint32
	wordsPerRow int32
}

/*
 * Array giving the position of the right-most set bit for each possible
 * byte value. count the right-most position as the 0th bit, and the
 * left-most the 7th bit. The 0th entry of the array should not be used.
 * e.g. 2 = 0x10 ==> rightmost_one_pos_8[2] = 1, 3 = 0x11 ==> rightmost_one_pos_8[3] = 0
 */
var rightmost_one_pos_8 = [256]uint8{
	0, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	6, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	7, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	6, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	5, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
	4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0,
}

// WordsFor returns how many uint32 words hold one bit per shape.
func WordsFor(numShapes int32) int32 {
	return (numShapes + 31) / 32
}

// FromWords borrows a caller-owned word buffer. len(words) must cover
// rows*wordsPerRow for every row the caller will address.
func FromWords(words []uint32, wordsPerRow int32) Bitmap {
	return Bitmap{words: words, wordsPerRow: wordsPerRow}
}

func (n Bitmap) WordsPerRow() int32 {
	return n.wordsPerRow
}

// Clear zeroes the words of the first rows rows.
func (n Bitmap) Clear(rows int32) {
	end := int(rows) * int(n.wordsPerRow)
	for i := 0; i < end; i++ {
		n.words[i] = 0
	}
}

// Toggle flips the bit for (row, shape). Single-goroutine use only.
func (n Bitmap) Toggle(row, shape int32) {
	n.words[int(row)*int(n.wordsPerRow)+int(shape>>5)] ^= 1 << uint(shape&31)
}

// AtomicToggle flips the bit for (row, shape) with a CAS loop. XOR commutes,
// so concurrent togglers land on the same final word regardless of order.
func (n Bitmap) AtomicToggle(row, shape int32) {
	w := &n.words[int(row)*int(n.wordsPerRow)+int(shape>>5)]
	mask := uint32(1) << uint(shape&31)
	for {
		old := atomic.LoadUint32(w)
		if atomic.CompareAndSwapUint32(w, old, old^mask) {
			return
		}
	}
}

func (n Bitmap) Contains(row, shape int32) bool {
	return n.words[int(row)*int(n.wordsPerRow)+int(shape>>5)]&(1<<uint(shape&31)) != 0
}

func rightmost_one_pos_32(word uint32) int32 {
	// Use eight bits as a group to quickly determine whether there is a 1 in
	// it; if not, the rightmost one lives in a later group, so add up the
	// distance and shift. Once a group has a 1, a pre-made table gives the
	// position inside it.
	var result int32
	for (word & 0xFF) == 0 {
		word >>= 8
		result += 8
	}
	return result + int32(rightmost_one_pos_8[word&255])
}

// FirstShape decodes one row of the bitset into the signed containment
// result: the index of the first set shape bit, or -1 when the row hit no
// shape. This is what the filter polarity test consumes.
func (n Bitmap) FirstShape(row int32) int32 {
	base := int(row) * int(n.wordsPerRow)
	for w := 0; w < int(n.wordsPerRow); w++ {
		if word := n.words[base+w]; word != 0 {
			return int32(w)*32 + rightmost_one_pos_32(word)
		}
	}
	return -1
}

// Count returns how many shape bits are set for the row.
func (n Bitmap) Count(row int32) int {
	base := int(row) * int(n.wordsPerRow)
	var cnt int
	for w := 0; w < int(n.wordsPerRow); w++ {
		cnt += bits.OnesCount32(n.words[base+w])
	}
	return cnt
}
