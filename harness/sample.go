package harness

import (
	_ "embed"
	"fmt"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/program"
)

//go:embed programs/sample.asm
var sampleSource string

// SampleProgram hashes four zero words, recovers a secp256k1 signer over the
// digest and checks both against known values. It halts with 1.
func SampleProgram() []byte {
	code, err := program.Assemble(sampleSource)
	if err != nil {
		panic(fmt.Sprintf("sample program: %v", err))
	}
	return code
}

// EmptyAccess is a single pathway with no data, keys or state.
func EmptyAccess() *access.Access {
	return access.Empty()
}
