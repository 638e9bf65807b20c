package literals

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Canonical mode keeps the encoding of a pool deterministic, so two
// compilations of the same unit produce identical bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("literals: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalPool serializes a literal pool to CBOR bytes.
func MarshalPool(p *Pool) ([]byte, error) {
	return cborEncMode.Marshal(p)
}

// UnmarshalPool deserializes a literal pool from CBOR bytes.
func UnmarshalPool(data []byte) (*Pool, error) {
	var p Pool
	if err := cbor.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("literals: unmarshal pool: %w", err)
	}
	return &p, nil
}
