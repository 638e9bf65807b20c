package literals

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlBuffer struct {
	Index    int      `yaml:"index"`
	Literals []string `yaml:"literals"`
}

// DumpYAML writes a readable listing of the pool: one document entry per
// buffer, each literal rendered as "<tag> <payload>".
func DumpYAML(w io.Writer, p *Pool) error {
	data := make([]yamlBuffer, 0, p.Len())
	for i, b := range p.Buffers {
		entry := yamlBuffer{Index: i, Literals: make([]string, 0, b.Len())}
		for _, l := range b.Literals {
			entry.Literals = append(entry.Literals, l.String())
		}
		data = append(data, entry)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("literals: marshal pool: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("literals: encoder close: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
