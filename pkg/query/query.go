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

// Package query is the call boundary of the engine. Every entry validates
// its arguments, selects the target device, and returns its payload through
// a (value, error) envelope; a recover barrier converts panics from kernel
// depth into the envelope error, so nothing unwinds into the caller.
package query

import (
	"sync"

	"github.com/axiondb/axion/pkg/common/axerr"
	"github.com/axiondb/axion/pkg/config"
	"github.com/axiondb/axion/pkg/logutil"
	"github.com/axiondb/axion/pkg/vm/device"
)

var (
	mu     sync.Mutex
	engine *device.Runtime
)

// SetRuntime installs the device runtime entries dispatch on and returns the
// previous one so the caller can close it.
func SetRuntime(rt *device.Runtime) *device.Runtime {
	mu.Lock()
	defer mu.Unlock()
	prev := engine
	engine = rt
	return prev
}

// GetRuntime returns the installed runtime, building one from default
// engine parameters on first use.
func GetRuntime() *device.Runtime {
	mu.Lock()
	defer mu.Unlock()
	if engine == nil {
		var ep config.EngineParameters
		ep.SetDefaultValues()
		rt, err := device.NewRuntime(&ep)
		if err != nil {
			panic(err)
		}
		engine = rt
	}
	return engine
}

func deviceFor(deviceID int) (*device.Device, error) {
	return device.ChooseDevice(GetRuntime(), deviceID)
}

// run executes fn behind the recover barrier.
func run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logutil.Errorf("query entry recovered from kernel panic: %v", r)
			err = axerr.NewKernelPanic(r)
		}
	}()
	return fn()
}
