// Package crypto holds the pure functions behind the cryptographic opcodes.
package crypto

import (
	stded25519 "crypto/ed25519"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	consensus "github.com/hdevalence/ed25519consensus"
	sha256 "github.com/minio/sha256-simd"

	"github.com/jam-duna/fraudproof/common"
)

const (
	DigestWords      = 4
	Ed25519KeyWords  = 4
	SignatureWords   = 8
	PublicKeyWords   = 5
	CompressedKeyLen = 33
)

// SHA256 hashes data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// VerifyEd25519 applies ZIP-215 verification rules, so every node agrees on
// the validity of edge-case signatures.
func VerifyEd25519(publicKey [32]byte, message []byte, sig [64]byte) bool {
	return consensus.Verify(stded25519.PublicKey(publicKey[:]), message, sig[:])
}

// RecoverSecp256k1 recovers the compressed public key that produced sig
// (r || s) over hash. ok is false for a recovery id above 3 or a signature
// no key could have produced.
func RecoverSecp256k1(hash [32]byte, sig [64]byte, recoveryID common.Word) (key [CompressedKeyLen]byte, ok bool) {
	if recoveryID > 3 {
		return key, false
	}
	raw := make([]byte, 0, 65)
	raw = append(raw, sig[:]...)
	raw = append(raw, byte(recoveryID))
	pub, err := ethcrypto.SigToPub(hash[:], raw)
	if err != nil || pub == nil {
		return key, false
	}
	copy(key[:], ethcrypto.CompressPubkey(pub))
	return key, true
}

// DigestToWords splits a digest into 4 big-endian words.
func DigestToWords(d [32]byte) [DigestWords]common.Word {
	return common.HashToWords(common.Hash(d))
}

// WordsToDigest is the inverse of DigestToWords.
func WordsToDigest(words []common.Word) [32]byte {
	var d [32]byte
	copy(d[:], common.WordsToBytes(words[:DigestWords]))
	return d
}

// WordsToSignature packs 8 words into a 64 byte signature.
func WordsToSignature(words []common.Word) [64]byte {
	var s [64]byte
	copy(s[:], common.WordsToBytes(words[:SignatureWords]))
	return s
}

// PublicKeyToWords packs a 33 byte compressed key into 5 words: four full
// words, then the last byte in the low byte of the fifth.
func PublicKeyToWords(key [CompressedKeyLen]byte) [PublicKeyWords]common.Word {
	var out [PublicKeyWords]common.Word
	copy(out[:4], common.BytesToWords(key[:32]))
	out[4] = common.Word(key[32])
	return out
}
