// Package manifest tracks the lifecycle of emitted facade snapshots.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Snapshot represents one emitted facade file in the manifest.
type Snapshot struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
	File    string `yaml:"file" json:"file"`
}

// Manifest tracks emitted snapshots and the current/previous version
// pointers. MinimumToolVersion, when set, is a semver floor the
// running tool must satisfy before touching the manifest.
type Manifest struct {
	CurrentVersion     string     `yaml:"current_version" json:"current_version"`
	PreviousVersion    string     `yaml:"previous_version" json:"previous_version"`
	MinimumToolVersion string     `yaml:"minimum_tool_version,omitempty" json:"minimum_tool_version,omitempty"`
	Snapshots          []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// CheckToolVersion verifies toolVersion against MinimumToolVersion.
// An empty floor always passes.
func (m *Manifest) CheckToolVersion(toolVersion string) error {
	if m.MinimumToolVersion == "" {
		return nil
	}
	c, err := semver.NewConstraint(">= " + m.MinimumToolVersion)
	if err != nil {
		return fmt.Errorf("parse minimum tool version %q: %w", m.MinimumToolVersion, err)
	}
	v, err := semver.NewVersion(toolVersion)
	if err != nil {
		return fmt.Errorf("parse tool version %q: %w", toolVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("tool version %s is older than manifest minimum %s", toolVersion, m.MinimumToolVersion)
	}
	return nil
}

// AddSnapshot records a snapshot, updating version pointers and
// de-duplicating entries that share the same name and version. The
// current pointer only moves forward: recording an older semver leaves
// the pointers untouched.
func (m *Manifest) AddSnapshot(s Snapshot) {
	if newer(s.Version, m.CurrentVersion) {
		if m.CurrentVersion != "" {
			m.PreviousVersion = m.CurrentVersion
		}
		m.CurrentVersion = s.Version
	}

	for i := range m.Snapshots {
		if m.Snapshots[i].Name == s.Name && m.Snapshots[i].Version == s.Version {
			m.Snapshots[i] = s
			return
		}
	}

	m.Snapshots = append(m.Snapshots, s)
}

// SnapshotFile returns the path associated with the provided version, if present.
func (m *Manifest) SnapshotFile(version string) string {
	for _, s := range m.Snapshots {
		if s.Version == version {
			return s.File
		}
	}
	return ""
}

// newer reports whether a supersedes b. Unparsable versions fall back
// to always-newer so non-semver tags still advance the pointer.
func newer(a, b string) bool {
	if b == "" {
		return true
	}
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return true
	}
	return va.GreaterThan(vb)
}
