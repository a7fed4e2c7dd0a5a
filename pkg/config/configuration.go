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

package config

import (
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/axiondb/axion/pkg/logutil"
)

// EngineParameters configures the execution runtime of the engine core.
type EngineParameters struct {
	//number of logical devices the runtime exposes. default: 1
	DeviceCount int `toml:"deviceCount"`

	//goroutines per device worker pool. default: runtime.NumCPU()
	WorkerPoolSize int `toml:"workerPoolSize"`

	//run every device sequentially on the host, no worker fan-out.
	//parallel and sequential execution must produce identical results;
	//this flag exists for debugging and for hosts without spare cores.
	HostSequential bool `toml:"hostSequential"`

	//minimum number of logical work items one pool task receives.
	//default: 4096
	ParallelGrain int `toml:"parallelGrain"`

	Log logutil.LogConfig `toml:"log"`
}

// SetDefaultValues fills unset fields. Called by LoadEngineParameters and by
// embedders constructing parameters in code.
func (ep *EngineParameters) SetDefaultValues() {
	if ep.DeviceCount <= 0 {
		ep.DeviceCount = 1
	}
	if ep.WorkerPoolSize <= 0 {
		ep.WorkerPoolSize = runtime.NumCPU()
	}
	if ep.ParallelGrain <= 0 {
		ep.ParallelGrain = 4096
	}
	if ep.Log.Level == "" {
		ep.Log.Level = "info"
	}
	if ep.Log.Format == "" {
		ep.Log.Format = "console"
	}
}

// LoadEngineParameters reads a toml file and applies defaults.
func LoadEngineParameters(path string) (*EngineParameters, error) {
	var ep EngineParameters
	if _, err := toml.DecodeFile(path, &ep); err != nil {
		return nil, err
	}
	ep.SetDefaultValues()
	return &ep, nil
}
