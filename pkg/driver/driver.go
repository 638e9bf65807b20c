// Package driver compiles parsed units with the settings of their project
// and writes the resulting artifacts.
package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"classtab/pkg/ast"
	"classtab/pkg/compiler"
	"classtab/pkg/config"
	"classtab/pkg/errors"
	"classtab/pkg/literals"
	"classtab/pkg/source"
)

var log = commonlog.GetLogger("classtab.driver")

// Driver holds the settings shared by every unit of a project.
type Driver struct {
	Options *config.Options
}

// New loads the settings of the project in dir and configures logging.
func New(dir string) (*Driver, error) {
	opts, err := config.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	opts.Apply()
	if opts.Path != "" {
		log.Infof("using settings from %s", opts.Path)
	}
	return &Driver{Options: opts}, nil
}

// NewWithOptions creates a driver with explicit settings.
func NewWithOptions(opts *config.Options) *Driver {
	if opts == nil {
		opts = config.Default()
	}
	return &Driver{Options: opts}
}

// CompileUnit compiles the classes of one parsed unit. A fresh compiler is
// used for every unit.
func (d *Driver) CompileUnit(src *source.SourceFile, program *ast.Program) (*compiler.Output, []errors.Error) {
	log.Debugf("compiling %s", src.DisplayPath())
	return compiler.NewCompiler(d.Options, src).Compile(program)
}

// CompileAndReport compiles a unit and writes any errors to w. It returns
// nil when compilation failed.
func (d *Driver) CompileAndReport(w io.Writer, src *source.SourceFile, program *ast.Program) *compiler.Output {
	out, errs := d.CompileUnit(src, program)
	if len(errs) > 0 {
		errors.DisplayErrors(w, src, errs)
		return nil
	}
	return out
}

// Artifacts lists the files WriteArtifacts produced.
type Artifacts struct {
	Literals    string // CBOR literal pool
	Debug       string // YAML literal pool, only with debug output
	Disassembly string // bytecode listing, only with debug output
}

// WriteArtifacts writes the literal pool of out next to base in dir, plus
// readable dumps when debug is set.
func WriteArtifacts(out *compiler.Output, dir, base string, debug bool) (Artifacts, error) {
	var a Artifacts
	base = strings.TrimSuffix(base, filepath.Ext(base))

	data, err := literals.MarshalPool(out.Literals)
	if err != nil {
		return a, fmt.Errorf("encode literal pool: %w", err)
	}
	a.Literals = filepath.Join(dir, base+".lit")
	if err := os.WriteFile(a.Literals, data, 0o644); err != nil {
		return a, err
	}
	if !debug {
		return a, nil
	}

	a.Debug = a.Literals + ".yaml"
	f, err := os.Create(a.Debug)
	if err != nil {
		return a, err
	}
	if err := literals.DumpYAML(f, out.Literals); err != nil {
		f.Close()
		return a, err
	}
	if err := f.Close(); err != nil {
		return a, err
	}

	a.Disassembly = filepath.Join(dir, base+".dis")
	listing := out.Chunk.DisassembleChunk(base)
	if err := os.WriteFile(a.Disassembly, []byte(listing), 0o644); err != nil {
		return a, err
	}
	return a, nil
}
