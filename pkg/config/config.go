// Package config handles classtab.toml compiler settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// FileName is the name of the settings file looked up in a project directory.
const FileName = "classtab.toml"

// Options represents a classtab.toml configuration.
type Options struct {
	Compiler Compiler `toml:"compiler"`
	Log      Log      `toml:"log"`

	// Path is the file the options were loaded from, empty for defaults.
	Path string `toml:"-"`
}

// Compiler configures class compilation.
type Compiler struct {
	// RecordName prefixes the names literal buffers are referenced by from
	// other buffers (`<record>_<index>`).
	RecordName         string `toml:"record-name"`
	UseDefineSemantics bool   `toml:"use-define-semantics"`
}

// Log configures the commonlog backend.
type Log struct {
	Verbosity int    `toml:"verbosity"` // -4 (none) .. 2 (debug)
	File      string `toml:"file"`      // empty logs to stderr
}

// Default returns the options used when no classtab.toml exists.
func Default() *Options {
	return &Options{
		Compiler: Compiler{
			RecordName:         "_GLOBAL",
			UseDefineSemantics: true,
		},
		Log: Log{Verbosity: 0},
	}
}

// Load parses the settings file at path on top of the defaults.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	opts := Default()
	if _, err := toml.Decode(string(data), opts); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	opts.Path = path

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return opts, nil
}

// LoadDir loads dir/classtab.toml, falling back to Default when the file
// does not exist.
func LoadDir(dir string) (*Options, error) {
	path := filepath.Join(dir, FileName)
	opts, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return opts, err
}

// Validate checks option values.
func (o *Options) Validate() error {
	name := o.Compiler.RecordName
	if name == "" {
		return errors.New("compiler.record-name must not be empty")
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("compiler.record-name %q must not contain whitespace", name)
	}
	if o.Log.Verbosity < -4 || o.Log.Verbosity > 2 {
		return fmt.Errorf("log.verbosity %d out of range [-4, 2]", o.Log.Verbosity)
	}
	return nil
}

// Apply configures the logging backend.
func (o *Options) Apply() {
	if o.Log.File == "" {
		commonlog.Configure(o.Log.Verbosity, nil)
		return
	}
	file := o.Log.File
	commonlog.Configure(o.Log.Verbosity, &file)
}
