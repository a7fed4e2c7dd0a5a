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

package device

import (
	"sync"
)

const streamQueueDepth = 128

// Stream is an in-order asynchronous op queue bound to one device. Ops
// submitted to a stream run one at a time in submission order on a dedicated
// consumer goroutine; a later op observes every write of an earlier op.
// Calls are asynchronous with respect to the submitter until Sync.
type Stream struct {
	device    *Device
	ops       chan func()
	pending   sync.WaitGroup
	closeOnce sync.Once
}

func NewStream(d *Device) *Stream {
	s := &Stream{
		device: d,
		ops:    make(chan func(), streamQueueDepth),
	}
	go s.consume()
	return s
}

func (s *Stream) consume() {
	for op := range s.ops {
		op()
		s.pending.Done()
	}
}

func (s *Stream) Device() *Device {
	return s.device
}

// Submit enqueues an op. Blocks only when the queue is full.
func (s *Stream) Submit(op func()) {
	s.pending.Add(1)
	s.ops <- op
}

// Sync blocks until every submitted op has finished.
func (s *Stream) Sync() {
	s.pending.Wait()
}

// Close drains the stream and stops the consumer. The stream must not be
// used afterwards.
func (s *Stream) Close() {
	s.pending.Wait()
	s.closeOnce.Do(func() {
		close(s.ops)
	})
}
