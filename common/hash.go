package common

import (
	"encoding/binary"
)

// Word is the unit of every value on the stack, in memory and in state slots.
type Word = uint64

const (
	WordSize   = 8
	HashLength = 32
)

// WordToBytes encodes a word big-endian.
func WordToBytes(w Word) [WordSize]byte {
	var b [WordSize]byte
	binary.BigEndian.PutUint64(b[:], w)
	return b
}

// WordsToBytes flattens words into their big-endian bytes.
func WordsToBytes(words []Word) []byte {
	out := make([]byte, 0, len(words)*WordSize)
	for _, w := range words {
		b := WordToBytes(w)
		out = append(out, b[:]...)
	}
	return out
}

// BytesToWords packs bytes into big-endian words. A trailing partial chunk is
// right aligned in the last word.
func BytesToWords(data []byte) []Word {
	words := make([]Word, 0, (len(data)+WordSize-1)/WordSize)
	for len(data) >= WordSize {
		words = append(words, binary.BigEndian.Uint64(data[:WordSize]))
		data = data[WordSize:]
	}
	if len(data) > 0 {
		var b [WordSize]byte
		copy(b[WordSize-len(data):], data)
		words = append(words, binary.BigEndian.Uint64(b[:]))
	}
	return words
}

// HashToWords splits a 32 byte hash into 4 words.
func HashToWords(h Hash) [4]Word {
	var out [4]Word
	for i := range out {
		out[i] = binary.BigEndian.Uint64(h[i*WordSize : (i+1)*WordSize])
	}
	return out
}

// WordsToHash is the inverse of HashToWords.
func WordsToHash(words [4]Word) Hash {
	var h Hash
	for i, w := range words {
		binary.BigEndian.PutUint64(h[i*WordSize:(i+1)*WordSize], w)
	}
	return h
}

// BoolToWord maps true to 1 and false to 0.
func BoolToWord(b bool) Word {
	if b {
		return 1
	}
	return 0
}
