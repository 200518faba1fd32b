package state

import (
	"fmt"
	"math/big"

	"creatorpass/core/types"
)

// GetAccount loads the account record for the supplied address. Unknown
// addresses report a fresh zero-balance account rather than an error.
func (m *Manager) GetAccount(addr []byte) (*types.Account, error) {
	if len(addr) == 0 {
		return nil, fmt.Errorf("state: account address required")
	}
	var stored types.Account
	ok, err := m.KVGet(prefixedAddrKey(accountPrefix, addr), &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return types.NewAccount(), nil
	}
	if stored.Balance == nil {
		stored.Balance = big.NewInt(0)
	}
	return &stored, nil
}

// PutAccount persists the account record for the supplied address.
func (m *Manager) PutAccount(addr []byte, account *types.Account) error {
	if len(addr) == 0 {
		return fmt.Errorf("state: account address required")
	}
	if account == nil {
		return fmt.Errorf("state: account record required")
	}
	stored := account.Clone()
	return m.KVPut(prefixedAddrKey(accountPrefix, addr), stored)
}
