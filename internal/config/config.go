/*
Copyright (C) 2013-2014 Regents of the University of Minnesota.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package config holds the process-wide configuration object described
// in spec §6: max_procs (0 = use CPU count), loaded once at startup
// from a JSON file next to the executable. No other environment
// variables are recognized.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Config is the process-wide configuration. It is intentionally small:
// exactly one setting is recognized.
type Config struct {
	// MaxProcs is the cap on worker-pool thread count. 0 means "use the
	// machine's logical CPU count".
	MaxProcs int `json:"max_procs"`
}

var (
	mu      sync.RWMutex
	current = Config{MaxProcs: 0}
)

// Load reads the JSON configuration file at path and installs it as the
// process-wide configuration. A missing file is not an error: the
// default (MaxProcs: 0) is kept.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	mu.Lock()
	current = c
	mu.Unlock()
	return nil
}

// LoadNextToExecutable loads "whitebox_tools.json" from the directory
// containing the running executable, if it exists.
func LoadNextToExecutable() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return Load(filepath.Join(filepath.Dir(exe), "whitebox_tools.json"))
}

// MaxProcs returns the configured worker-pool cap, resolving 0 to the
// machine's logical CPU count.
func MaxProcs() int {
	mu.RLock()
	defer mu.RUnlock()
	if current.MaxProcs <= 0 {
		return runtime.NumCPU()
	}
	return current.MaxProcs
}

// Current returns a copy of the process-wide configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
