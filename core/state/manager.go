package state

import (
	"errors"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"creatorpass/storage"
)

// Manager provides keyed, RLP-encoded record storage over a raw key-value
// database. Every platform table and scalar lives behind it, so durable
// backends survive process restarts with the full persisted state layout.
type Manager struct {
	db storage.Database
}

// NewManager creates a state manager operating on the provided database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

func kvKey(key []byte) []byte {
	return ethcrypto.Keccak256(key)
}

// KVPut encodes the supplied value with RLP and stores it under the hashed
// key.
func (m *Manager) KVPut(key []byte, value interface{}) error {
	if m == nil || m.db == nil {
		return fmt.Errorf("state: manager not initialised")
	}
	if len(key) == 0 {
		return fmt.Errorf("kv: key must not be empty")
	}
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	return m.db.Put(kvKey(key), encoded)
}

// KVGet retrieves the value stored under the supplied key and decodes it into
// the provided destination. The boolean return value indicates whether the key
// existed in state.
func (m *Manager) KVGet(key []byte, out interface{}) (bool, error) {
	if m == nil || m.db == nil {
		return false, fmt.Errorf("state: manager not initialised")
	}
	if len(key) == 0 {
		return false, fmt.Errorf("kv: key must not be empty")
	}
	data, err := m.db.Get(kvKey(key))
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// KVAppendUint64 appends the provided value to the uint64 list stored under
// the supplied key. Duplicate values are ignored to keep the index
// deterministic.
func (m *Manager) KVAppendUint64(key []byte, value uint64) error {
	var list []uint64
	if _, err := m.KVGet(key, &list); err != nil {
		return err
	}
	for _, existing := range list {
		if existing == value {
			return nil
		}
	}
	list = append(list, value)
	return m.KVPut(key, list)
}

// KVGetUint64List retrieves the uint64 list stored under the supplied key. A
// missing key yields an empty list.
func (m *Manager) KVGetUint64List(key []byte) ([]uint64, error) {
	var list []uint64
	if _, err := m.KVGet(key, &list); err != nil {
		return nil, err
	}
	return list, nil
}
