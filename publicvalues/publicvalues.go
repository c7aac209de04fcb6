// Package publicvalues encodes the record a proof commits to, laid out as the
// Solidity struct (bytes32 blockHash, uint32 solution, uint32 constraint,
// uint8 fraudType).
package publicvalues

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/jam-duna/fraudproof/common"
)

// EncodedSize is four 32 byte ABI slots.
const EncodedSize = 128

type PublicValues struct {
	BlockHash  common.Hash `json:"block_hash"`
	Solution   uint32      `json:"solution"`
	Constraint uint32      `json:"constraint"`
	FraudType  uint8       `json:"fraud_type"`
}

var arguments abi.Arguments

func init() {
	arguments = abi.Arguments{
		{Name: "blockHash", Type: mustType("bytes32")},
		{Name: "solution", Type: mustType("uint32")},
		{Name: "constraint", Type: mustType("uint32")},
		{Name: "fraudType", Type: mustType("uint8")},
	}
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

func (pv PublicValues) Encode() ([]byte, error) {
	return arguments.Pack([32]byte(pv.BlockHash), pv.Solution, pv.Constraint, pv.FraudType)
}

func Decode(data []byte) (PublicValues, error) {
	if len(data) != EncodedSize {
		return PublicValues{}, fmt.Errorf("public values: %d bytes, want %d", len(data), EncodedSize)
	}
	values, err := arguments.Unpack(data)
	if err != nil {
		return PublicValues{}, fmt.Errorf("public values: %w", err)
	}
	bh, ok0 := values[0].([32]byte)
	sol, ok1 := values[1].(uint32)
	con, ok2 := values[2].(uint32)
	ft, ok3 := values[3].(uint8)
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return PublicValues{}, fmt.Errorf("public values: unexpected field types %T %T %T %T", values[0], values[1], values[2], values[3])
	}
	return PublicValues{BlockHash: common.Hash(bh), Solution: sol, Constraint: con, FraudType: ft}, nil
}

func (pv PublicValues) String() string {
	return fmt.Sprintf("block_hash=%s solution=%d constraint=%d fraud_type=%d", pv.BlockHash.Hex(), pv.Solution, pv.Constraint, pv.FraudType)
}
