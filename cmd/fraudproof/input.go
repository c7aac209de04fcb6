package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/config"
	"github.com/jam-duna/fraudproof/harness"
	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/store"
)

type inputFlags struct {
	bytecodePath string
	asmPath      string
	predicate    string
	snapshotPath string
}

// readHexFile reads hex bytecode, ignoring whitespace and a 0x prefix.
func readHexFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := strings.Join(strings.Fields(string(data)), "")
	s = strings.TrimPrefix(s, "0x")
	code, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return code, nil
}

// bytecode resolves the program to run. Without any input flag the sample
// program is used.
func (in *inputFlags) bytecode(cfg config.Config) ([]byte, error) {
	switch {
	case in.predicate != "":
		s, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.GetPredicate(common.HexToHash(in.predicate))
	case in.bytecodePath != "":
		return readHexFile(in.bytecodePath)
	case in.asmPath != "":
		src, err := os.ReadFile(in.asmPath)
		if err != nil {
			return nil, err
		}
		return program.Assemble(string(src))
	default:
		return harness.SampleProgram(), nil
	}
}

// access builds the read view from the JSON snapshot, if any. With a
// database configured, persisted state is materialized underneath it and
// snapshot state entries take precedence.
func (in *inputFlags) access(cfg config.Config) (*access.Access, error) {
	acc := harness.EmptyAccess()
	var snap *access.Snapshot
	if in.snapshotPath != "" {
		var err error
		if snap, err = access.LoadSnapshot(in.snapshotPath); err != nil {
			return nil, err
		}
		acc = snap.Access()
	}
	if cfg.DBPath == "" {
		return acc, nil
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	state, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	if snap != nil {
		for _, e := range snap.State {
			state.Set(e.Contract, e.Key, e.Value)
		}
	}
	acc.State = state
	return acc, nil
}
