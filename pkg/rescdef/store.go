/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package rescdef

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	//go:embed data/resources-v1.yaml
	resourceData []byte

	//go:embed data/resvattr-v1.yaml
	resvAttrData []byte

	loadOnce sync.Once
	svrTable *Table
	rsvTable *Table
	loadErr  error
)

type tableFile struct {
	Resources []Definition `yaml:"resources"`
}

// load parses both embedded tables exactly once. The data is embedded at
// build time, so the parsed representation is reused for the lifetime of
// the process.
func load() {
	loadOnce.Do(func() {
		svrTable, loadErr = parseTable(resourceData)
		if loadErr != nil {
			return
		}
		rsvTable, loadErr = parseTable(resvAttrData)
	})
}

func parseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for _, d := range f.Resources {
		if d.Name == "" {
			return nil, fmt.Errorf("definition with empty name")
		}
		if !d.Type.IsValid() {
			return nil, fmt.Errorf("definition %q has unknown datatype %q", d.Name, d.Type)
		}
		if !d.Policy.IsValid() {
			return nil, fmt.Errorf("definition %q has unknown policy %q", d.Name, d.Policy)
		}
	}
	return NewTable(f.Resources), nil
}

// ServerResources returns the process-wide server resource table.
func ServerResources() (*Table, error) {
	load()
	return svrTable, loadErr
}

// ResvAttributes returns the process-wide reservation attribute table.
func ResvAttributes() (*Table, error) {
	load()
	return rsvTable, loadErr
}
