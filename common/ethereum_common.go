package common

import (
	"encoding/json"
	"fmt"

	ethereumCommon "github.com/ethereum/go-ethereum/common"
)

// Hash is a custom type based on Ethereum's common.Hash
type Hash ethereumCommon.Hash

// ContentAddress is the 32 byte content hash of a contract or a predicate.
type ContentAddress = Hash

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte {
	return ethereumCommon.Hash(h).Bytes()
}

// String returns the abbreviated form, first and last four hex characters.
func (h Hash) String() string {
	x := h.Hex()
	return fmt.Sprintf("%s..%s", x[2:6], x[len(x)-4:])
}

func (h Hash) Hex() string {
	return ethereumCommon.Hash(h).Hex()
}

// BytesToHash converts a byte slice to a Hash.
func BytesToHash(b []byte) Hash {
	return Hash(ethereumCommon.BytesToHash(b))
}

// HexToHash converts a hexadecimal string to a Hash.
func HexToHash(s string) Hash {
	return Hash(ethereumCommon.HexToHash(s))
}

// MarshalJSON custom marshaler to convert Hash to hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Hex())
}

// UnmarshalJSON custom unmarshaler to handle hex strings for Hash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	*h = HexToHash(hexStr)
	return nil
}

// PredicateAddress identifies a predicate by the content hash of its contract
// and of the predicate itself.
type PredicateAddress struct {
	Contract  ContentAddress `json:"contract"`
	Predicate ContentAddress `json:"predicate"`
}

// Words returns the contract words followed by the predicate words.
func (a PredicateAddress) Words() [8]Word {
	var out [8]Word
	c, p := HashToWords(a.Contract), HashToWords(a.Predicate)
	copy(out[:4], c[:])
	copy(out[4:], p[:])
	return out
}
