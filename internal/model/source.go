// Package model defines the data structures shared by the instrumentation workflow.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// File represents a source code file on disk.
type File struct {
	Path Path   `yaml:"path" msgpack:"path"`
	Hash string `yaml:"hash" msgpack:"hash"`
}

// Source represents a component source file selected for instrumentation.
// Root is the scan root the file was discovered under; output paths mirror
// the file's position relative to it.
type Source struct {
	Origin *File `yaml:"origin"`
	Root   Path  `yaml:"root,omitempty"`
}

// Rel returns the origin path relative to the scan root, or the origin path
// itself when the root is unknown or does not contain the origin.
func (s Source) Rel() Path {
	if s.Origin == nil {
		return ""
	}

	if s.Root == "" {
		return s.Origin.Path
	}

	rel, err := filepath.Rel(string(s.Root), string(s.Origin.Path))
	if err != nil || strings.HasPrefix(rel, "..") {
		return s.Origin.Path
	}

	return Path(rel)
}
