package literals

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("classtab.literals")

// Buffer is an ordered run of literals registered as one unit in the pool.
type Buffer struct {
	Literals []Literal `cbor:"1,keyasint"`
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{Literals: make([]Literal, 0)}
}

// Len returns the number of literals in the buffer.
func (b *Buffer) Len() int { return len(b.Literals) }

// At returns the literal at index i.
func (b *Buffer) At(i int) Literal { return b.Literals[i] }

// Add appends a literal and returns its index.
func (b *Buffer) Add(l Literal) int {
	b.Literals = append(b.Literals, l)
	return len(b.Literals) - 1
}

// Set overwrites the literal at index i.
func (b *Buffer) Set(i int, l Literal) {
	if i < 0 || i >= len(b.Literals) {
		panic(fmt.Sprintf("literal index %d out of range [0,%d)", i, len(b.Literals)))
	}
	b.Literals[i] = l
}

// Append copies every literal of other to the end of b.
func (b *Buffer) Append(other *Buffer) {
	b.Literals = append(b.Literals, other.Literals...)
}

func (b *Buffer) String() string {
	var out strings.Builder
	for i, l := range b.Literals {
		out.WriteString(fmt.Sprintf("%4d  %s\n", i, l))
	}
	return out.String()
}

// Pool is the program's literal-buffer registry. Buffers are referenced by
// their index in the pool.
type Pool struct {
	Buffers []*Buffer `cbor:"1,keyasint"`
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{Buffers: make([]*Buffer, 0)}
}

// Add registers a finished buffer and returns its index.
func (p *Pool) Add(b *Buffer) int {
	p.Buffers = append(p.Buffers, b)
	idx := len(p.Buffers) - 1
	if idx > 0xffff {
		panic("Too many literal buffers in one unit.")
	}
	log.Debugf("registered literal buffer %d (%d entries)", idx, b.Len())
	return idx
}

// Len returns the number of registered buffers.
func (p *Pool) Len() int { return len(p.Buffers) }

// Get returns the buffer registered at idx, or nil when out of range.
func (p *Pool) Get(idx int) *Buffer {
	if idx < 0 || idx >= len(p.Buffers) {
		return nil
	}
	return p.Buffers[idx]
}

// Name returns the record-qualified name a buffer is referenced by from
// other buffers.
func Name(recordName string, idx int) string {
	return fmt.Sprintf("%s_%d", recordName, idx)
}
