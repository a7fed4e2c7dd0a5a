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

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/config"
	"github.com/axiondb/axion/pkg/logutil"
)

// Runtime owns the logical devices a process executes on. Kernels see the
// same semantics on every device; devices differ only in how a flat for-each
// is scheduled.
type Runtime struct {
	devices []*Device
}

// Device runs flat data-parallel passes either sequentially or fanned out
// over a goroutine pool. Both modes must produce identical results; kernels
// provide that by keeping work items independent and commutative.
type Device struct {
	id         int
	pool       *ants.Pool
	grain      int
	sequential bool
}

// ChooseDevice resolves the device an entry call runs on. It is a package
// var so embedders can plug their own placement strategy.
var ChooseDevice = func(rt *Runtime, deviceID int) (*Device, error) {
	return rt.Device(deviceID)
}

func NewRuntime(ep *config.EngineParameters) (*Runtime, error) {
	rt := &Runtime{}
	for i := 0; i < ep.DeviceCount; i++ {
		d := &Device{id: i, grain: ep.ParallelGrain, sequential: ep.HostSequential}
		if !ep.HostSequential {
			pool, err := ants.NewPool(ep.WorkerPoolSize)
			if err != nil {
				rt.Close()
				return nil, err
			}
			d.pool = pool
		}
		rt.devices = append(rt.devices, d)
	}
	logutil.Info("device runtime up",
		zap.Int("devices", ep.DeviceCount),
		zap.Int("workers", ep.WorkerPoolSize),
		zap.Bool("sequential", ep.HostSequential))
	return rt, nil
}

func (rt *Runtime) Device(id int) (*Device, error) {
	if id < 0 || id >= len(rt.devices) {
		return nil, axerr.NewDeviceUnknown(id)
	}
	return rt.devices[id], nil
}

func (rt *Runtime) DeviceCount() int {
	return len(rt.devices)
}

func (rt *Runtime) Close() {
	for _, d := range rt.devices {
		if d.pool != nil {
			d.pool.Release()
		}
	}
}

func (d *Device) ID() int {
	return d.id
}

// ForEach evaluates fn(e) for every e in [0, n). On a parallel device the
// range splits into grain-sized blocks scheduled on the pool; fn must be
// safe to run out of order and concurrently. ForEach returns after every
// element ran.
func (d *Device) ForEach(n int, fn func(e int)) {
	if n <= 0 {
		return
	}
	if d.sequential || d.pool == nil || n <= d.grain {
		for e := 0; e < n; e++ {
			fn(e)
		}
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += d.grain {
		end := start + d.grain
		if end > n {
			end = n
		}
		s, e := start, end
		wg.Add(1)
		task := func() {
			defer wg.Done()
			for i := s; i < e; i++ {
				fn(i)
			}
		}
		if err := d.pool.Submit(task); err != nil {
			// Pool saturated or released mid-call: run the block inline so
			// the pass still completes.
			task()
		}
	}
	wg.Wait()
}
