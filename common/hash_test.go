package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashWordsRoundTrip(t *testing.T) {
	h := HexToHash("0x66687aadf862bd776c8fc18b8e9f8e20089714856ee233b3902a591d0d5f2925")
	words := HashToWords(h)
	require.Equal(t, [4]Word{0x66687aadf862bd77, 0x6c8fc18b8e9f8e20, 0x089714856ee233b3, 0x902a591d0d5f2925}, words)
	require.Equal(t, h, WordsToHash(words))
}

func TestBytesToWords(t *testing.T) {
	require.Equal(t, []Word{0x0102030405060708, 0x090a}, BytesToWords([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
	require.Empty(t, BytesToWords(nil))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 7}, WordsToBytes([]Word{7}))
}

func TestPredicateAddressWords(t *testing.T) {
	a := PredicateAddress{
		Contract:  HexToHash("0x0000000000000001000000000000000200000000000000030000000000000004"),
		Predicate: HexToHash("0x0000000000000005000000000000000600000000000000070000000000000008"),
	}
	require.Equal(t, [8]Word{1, 2, 3, 4, 5, 6, 7, 8}, a.Words())
	require.Equal(t, "0000..0004", a.Contract.String())
}
