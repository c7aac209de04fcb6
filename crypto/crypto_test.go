package crypto

import (
	stded25519 "crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jam-duna/fraudproof/common"
)

var (
	emptyDigestWords = [4]common.Word{0x66687aadf862bd77, 0x6c8fc18b8e9f8e20, 0x089714856ee233b3, 0x902a591d0d5f2925}
	sampleSigWords   = []common.Word{
		0x6557e25568f5709d, 0x8ef0e2ed514e0559, 0x4370310d2eb9156a, 0xcfae57ca9c7cda1e,
		0x325f34333bb5abd8, 0xdf470d8e21ef1523, 0x73f1e2fc59fcbf5c, 0x4c5486bf3ad03fc3,
	}
	sampleKeyWords = [5]common.Word{0x03411dbd69cf3a61, 0x13787b4a2f9ca491, 0x3707c2f906ba5258, 0x931a3fde8dc8e629, 0x78}
)

func TestSHA256Vector(t *testing.T) {
	digest := SHA256(make([]byte, 32))
	require.Equal(t, emptyDigestWords, DigestToWords(digest))
	require.Equal(t, digest, WordsToDigest(emptyDigestWords[:]))
}

func TestRecoverSecp256k1Vector(t *testing.T) {
	hash := WordsToDigest(emptyDigestWords[:])
	sig := WordsToSignature(sampleSigWords)

	key, ok := RecoverSecp256k1(hash, sig, 1)
	require.True(t, ok)
	require.Equal(t, sampleKeyWords, PublicKeyToWords(key))

	other, ok := RecoverSecp256k1(hash, sig, 0)
	if ok {
		require.NotEqual(t, key, other)
	}

	_, ok = RecoverSecp256k1(hash, sig, 4)
	require.False(t, ok)

	_, ok = RecoverSecp256k1(hash, [64]byte{}, 1)
	require.False(t, ok)
}

func TestVerifyEd25519(t *testing.T) {
	priv := stded25519.NewKeyFromSeed(make([]byte, stded25519.SeedSize))
	msg := []byte("constraint")
	var pub [32]byte
	copy(pub[:], priv.Public().(stded25519.PublicKey))
	var sig [64]byte
	copy(sig[:], stded25519.Sign(priv, msg))

	require.True(t, VerifyEd25519(pub, msg, sig))
	require.False(t, VerifyEd25519(pub, []byte("tampered"), sig))
	sig[0] ^= 1
	require.False(t, VerifyEd25519(pub, msg, sig))
}
