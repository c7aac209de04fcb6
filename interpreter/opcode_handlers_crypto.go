package interpreter

import (
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/crypto"
	"github.com/jam-duna/fraudproof/program"
)

// [data[len] len] -> digest[4]
func handleSHA256(vm *VM, _ program.Instruction) error {
	data, err := vm.Stack.PopLenWords()
	if err != nil {
		return err
	}
	d := crypto.DigestToWords(crypto.SHA256(common.WordsToBytes(data)))
	return vm.Stack.Extend(d[:]...)
}

// [data[len] len sig[8] key[4]] -> bool
func handleVERIFY_ED25519(vm *VM, _ program.Instruction) error {
	key, err := vm.Stack.PopN(crypto.Ed25519KeyWords)
	if err != nil {
		return err
	}
	sig, err := vm.Stack.PopN(crypto.SignatureWords)
	if err != nil {
		return err
	}
	data, err := vm.Stack.PopLenWords()
	if err != nil {
		return err
	}
	ok := crypto.VerifyEd25519(crypto.WordsToDigest(key), common.WordsToBytes(data), crypto.WordsToSignature(sig))
	return vm.Stack.Push(common.BoolToWord(ok))
}

// [hash[4] sig[8] recid] -> key[5], all zero when recovery fails
func handleRECOVER_SECP256K1(vm *VM, _ program.Instruction) error {
	recid, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	sig, err := vm.Stack.PopN(crypto.SignatureWords)
	if err != nil {
		return err
	}
	hash, err := vm.Stack.PopN(crypto.DigestWords)
	if err != nil {
		return err
	}
	var out [crypto.PublicKeyWords]common.Word
	if key, ok := crypto.RecoverSecp256k1(crypto.WordsToDigest(hash), crypto.WordsToSignature(sig), recid); ok {
		out = crypto.PublicKeyToWords(key)
	}
	return vm.Stack.Extend(out[:]...)
}
