// Package manifest handles loxvm.toml configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file.
const FileName = "loxvm.toml"

// Manifest represents a loxvm.toml configuration.
type Manifest struct {
	VM          VMConfig          `toml:"vm"`
	Log         LogConfig         `toml:"log"`
	Disassemble DisassembleConfig `toml:"disassemble"`

	// Dir is the directory containing the loxvm.toml file (set at load time).
	// Empty for the defaults.
	Dir string `toml:"-"`
}

// VMConfig configures execution.
type VMConfig struct {
	Trace  bool   `toml:"trace"`
	Output string `toml:"output"` // File receiving emitted results; empty means stdout
}

// LogConfig configures commonlog.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// DisassembleConfig configures the listing printed before a run.
type DisassembleConfig struct {
	Enabled bool   `toml:"enabled"`
	Name    string `toml:"name"`
}

// Default returns the configuration used when no loxvm.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Disassemble.Name == "" {
		m.Disassemble.Name = "test chunk"
	}
}

// Load parses a loxvm.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}
	if m.Log.Verbosity < -4 || m.Log.Verbosity > 2 {
		return nil, fmt.Errorf("log.verbosity %d in %s out of range [-4, 2]", m.Log.Verbosity, path)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	m.applyDefaults()

	return &m, nil
}

// FindAndLoad walks up from startDir to find a loxvm.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// OutputPath returns the absolute path of the result output file, or ""
// for stdout. Relative paths are resolved against the manifest directory.
func (m *Manifest) OutputPath() string {
	return m.resolve(m.VM.Output)
}

// LogPath returns the absolute path of the log file, or "" for stderr.
func (m *Manifest) LogPath() string {
	return m.resolve(m.Log.File)
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Dir == "" {
		return p
	}
	return filepath.Join(m.Dir, p)
}
