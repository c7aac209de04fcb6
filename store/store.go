// Package store persists predicates and contract state in LevelDB.
package store

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/crypto"
	"github.com/jam-duna/fraudproof/log"
	"github.com/jam-duna/fraudproof/vmerrors"
)

const (
	predicatePrefix = 'p'
	statePrefix     = 's'
)

// Store wraps LevelDB. LevelDB handles its own synchronization.
type Store struct {
	db *leveldb.DB
}

// Open opens or creates a database at path. An empty path is in-memory.
func Open(path string) (*Store, error) {
	var db *leveldb.DB
	var err error

	if path == "" {
		db, err = leveldb.Open(leveldbstorage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func OpenMemory() (*Store, error) {
	return Open("")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func predicateKey(addr common.ContentAddress) []byte {
	return append([]byte{predicatePrefix}, addr.Bytes()...)
}

func contractPrefix(contract common.ContentAddress) []byte {
	return append([]byte{statePrefix}, contract.Bytes()...)
}

func stateKey(contract common.ContentAddress, key access.Key) []byte {
	return append(contractPrefix(contract), common.WordsToBytes(key)...)
}

// PredicateAddress is the content address of bytecode.
func PredicateAddress(bytecode []byte) common.ContentAddress {
	return common.ContentAddress(crypto.SHA256(bytecode))
}

// PutPredicate stores bytecode under its content address.
func (s *Store) PutPredicate(bytecode []byte) (common.ContentAddress, error) {
	addr := PredicateAddress(bytecode)
	if err := s.db.Put(predicateKey(addr), bytecode, nil); err != nil {
		return addr, fmt.Errorf("PutPredicate %s: %w", addr, err)
	}
	log.Debug(log.StoreMonitoring, "predicate stored", "addr", addr, "bytes", len(bytecode))
	return addr, nil
}

func (s *Store) GetPredicate(addr common.ContentAddress) ([]byte, error) {
	data, err := s.db.Get(predicateKey(addr), nil)
	if err == leveldb.ErrNotFound {
		return nil, fmt.Errorf("predicate %s: %w", addr, vmerrors.ErrPredicateNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetPredicate %s: %w", addr, err)
	}
	return data, nil
}

func (s *Store) PutState(contract common.ContentAddress, key access.Key, value access.Value) error {
	return s.db.Put(stateKey(contract, key), common.WordsToBytes(value), nil)
}

func (s *Store) DeleteState(contract common.ContentAddress, key access.Key) error {
	return s.db.Delete(stateKey(contract, key), nil)
}

// GetState returns (nil, false, nil) if key is not set.
func (s *Store) GetState(contract common.ContentAddress, key access.Key) (access.Value, bool, error) {
	data, err := s.db.Get(stateKey(contract, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("GetState %s %v: %w", contract, key, err)
	}
	return common.BytesToWords(data), true, nil
}

// ApplyMutations writes mutations atomically. An empty value deletes the key.
func (s *Store) ApplyMutations(contract common.ContentAddress, mutations []access.Mutation) error {
	batch := new(leveldb.Batch)
	for _, m := range mutations {
		if len(m.Value) == 0 {
			batch.Delete(stateKey(contract, m.Key))
			continue
		}
		batch.Put(stateKey(contract, m.Key), common.WordsToBytes(m.Value))
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("ApplyMutations %s: %w", contract, err)
	}
	log.Debug(log.StoreMonitoring, "mutations applied", "contract", contract, "count", len(mutations))
	return nil
}

// Snapshot copies the state of the given contracts, or of every contract when
// none are named, into memory. Execution reads the snapshot, never the
// database.
func (s *Store) Snapshot(contracts ...common.ContentAddress) (*access.State, error) {
	state := access.NewState()
	prefixes := make([][]byte, 0, len(contracts))
	for _, c := range contracts {
		prefixes = append(prefixes, contractPrefix(c))
	}
	if len(prefixes) == 0 {
		prefixes = append(prefixes, []byte{statePrefix})
	}
	for _, prefix := range prefixes {
		if err := s.scan(prefix, state); err != nil {
			return nil, err
		}
	}
	log.Debug(log.StoreMonitoring, "state snapshot", "contracts", len(state.Contracts()))
	return state, nil
}

func (s *Store) scan(prefix []byte, into *access.State) error {
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()
	for iter.Next() {
		k := iter.Key()
		if len(k) < 1+common.HashLength || (len(k)-1-common.HashLength)%common.WordSize != 0 {
			return fmt.Errorf("malformed state key %x", k)
		}
		contract := common.BytesToHash(k[1 : 1+common.HashLength])
		key := access.Key(common.BytesToWords(k[1+common.HashLength:]))
		into.Set(contract, key, common.BytesToWords(iter.Value()))
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("scan %x: %w", prefix, err)
	}
	return nil
}
