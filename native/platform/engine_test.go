package platform

import (
	"math/big"

	"creatorpass/core/types"
)

type mockState struct {
	subscriptions map[[20]byte]*Subscription
	contents      map[uint64]*Content
	creatorIndex  map[[20]byte][]uint64
	approvals     map[[20]byte]bool
	earnings      map[[20]byte]*big.Int
	accounts      map[string]*types.Account
	counter       uint64
	price         *big.Int
	paused        bool
	admin         [20]byte
	adminSet      bool
}

func newMockState() *mockState {
	return &mockState{
		subscriptions: make(map[[20]byte]*Subscription),
		contents:      make(map[uint64]*Content),
		creatorIndex:  make(map[[20]byte][]uint64),
		approvals:     make(map[[20]byte]bool),
		earnings:      make(map[[20]byte]*big.Int),
		accounts:      make(map[string]*types.Account),
		price:         big.NewInt(0),
	}
}

func (m *mockState) SubscriptionGet(subscriber [20]byte) (*Subscription, bool, error) {
	sub, ok := m.subscriptions[subscriber]
	if !ok {
		return nil, false, nil
	}
	return sub.Clone(), true, nil
}

func (m *mockState) SubscriptionPut(sub *Subscription) error {
	if sub == nil {
		return nil
	}
	m.subscriptions[sub.Subscriber] = sub.Clone()
	return nil
}

func (m *mockState) ContentGet(id uint64) (*Content, bool, error) {
	content, ok := m.contents[id]
	if !ok {
		return nil, false, nil
	}
	return content.Clone(), true, nil
}

func (m *mockState) ContentPut(content *Content) error {
	if content == nil {
		return nil
	}
	m.contents[content.ID] = content.Clone()
	return nil
}

func (m *mockState) ContentCounter() (uint64, error) { return m.counter, nil }

func (m *mockState) SetContentCounter(counter uint64) error {
	m.counter = counter
	return nil
}

func (m *mockState) CreatorContentAppend(creator [20]byte, id uint64) error {
	for _, existing := range m.creatorIndex[creator] {
		if existing == id {
			return nil
		}
	}
	m.creatorIndex[creator] = append(m.creatorIndex[creator], id)
	return nil
}

func (m *mockState) CreatorContentList(creator [20]byte) ([]uint64, error) {
	return append([]uint64(nil), m.creatorIndex[creator]...), nil
}

func (m *mockState) CreatorApproved(addr [20]byte) (bool, error) {
	return m.approvals[addr], nil
}

func (m *mockState) SetCreatorApproved(addr [20]byte, approved bool) error {
	m.approvals[addr] = approved
	return nil
}

func (m *mockState) EarningsGet(creator [20]byte) (*big.Int, error) {
	if accrued, ok := m.earnings[creator]; ok {
		return new(big.Int).Set(accrued), nil
	}
	return big.NewInt(0), nil
}

func (m *mockState) EarningsPut(creator [20]byte, amount *big.Int) error {
	m.earnings[creator] = new(big.Int).Set(amount)
	return nil
}

func (m *mockState) UnitPrice() (*big.Int, error) { return new(big.Int).Set(m.price), nil }

func (m *mockState) SetUnitPrice(price *big.Int) error {
	m.price = new(big.Int).Set(price)
	return nil
}

func (m *mockState) Paused() (bool, error) { return m.paused, nil }

func (m *mockState) SetPaused(paused bool) error {
	m.paused = paused
	return nil
}

func (m *mockState) Admin() ([20]byte, bool, error) { return m.admin, m.adminSet, nil }

func (m *mockState) SetAdmin(addr [20]byte) error {
	m.admin = addr
	m.adminSet = true
	return nil
}

func (m *mockState) GetAccount(addr []byte) (*types.Account, error) {
	if acc, ok := m.accounts[string(addr)]; ok {
		return acc.Clone(), nil
	}
	return nil, nil
}

func (m *mockState) PutAccount(addr []byte, account *types.Account) error {
	if account == nil {
		delete(m.accounts, string(addr))
		return nil
	}
	m.accounts[string(addr)] = account.Clone()
	return nil
}

func (m *mockState) setBalance(addr [20]byte, amount int64) {
	m.accounts[string(addr[:])] = &types.Account{Balance: big.NewInt(amount)}
}

func (m *mockState) balance(addr [20]byte) *big.Int {
	if acc, ok := m.accounts[string(addr[:])]; ok && acc.Balance != nil {
		return new(big.Int).Set(acc.Balance)
	}
	return big.NewInt(0)
}

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

const testVaultByte = 0xAA

// newTestEngine wires an engine against a fresh mock state with the admin set,
// a configured vault, and a pinned clock.
func newTestEngine(unitPrice int64, now int64) (*Engine, *mockState) {
	state := newMockState()
	engine := NewEngine()
	engine.SetState(state)
	engine.SetVault(addr(testVaultByte))
	engine.SetNowFunc(func() int64 { return now })
	if err := engine.Initialize(addr(0x01), big.NewInt(unitPrice)); err != nil {
		panic(err)
	}
	return engine, state
}
