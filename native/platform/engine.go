package platform

import (
	"encoding/hex"
	"math/big"
	"sync"
	"time"

	"creatorpass/core/events"
	"creatorpass/core/types"
)

// engineState is the persistence surface the engine mutates. Implemented by
// core/state.Manager in production and by map-backed mocks in tests.
type engineState interface {
	SubscriptionGet(subscriber [20]byte) (*Subscription, bool, error)
	SubscriptionPut(sub *Subscription) error

	ContentGet(id uint64) (*Content, bool, error)
	ContentPut(content *Content) error
	ContentCounter() (uint64, error)
	SetContentCounter(counter uint64) error
	CreatorContentAppend(creator [20]byte, id uint64) error
	CreatorContentList(creator [20]byte) ([]uint64, error)

	CreatorApproved(addr [20]byte) (bool, error)
	SetCreatorApproved(addr [20]byte, approved bool) error

	EarningsGet(creator [20]byte) (*big.Int, error)
	EarningsPut(creator [20]byte, amount *big.Int) error

	UnitPrice() (*big.Int, error)
	SetUnitPrice(price *big.Int) error
	Paused() (bool, error)
	SetPaused(paused bool) error
	Admin() ([20]byte, bool, error)
	SetAdmin(addr [20]byte) error

	GetAccount(addr []byte) (*types.Account, error)
	PutAccount(addr []byte, account *types.Account) error
}

// Engine wires the subscription, catalog, access, and earnings logic with
// persistence and event emission. Every exported operation holds the engine
// mutex for its full duration, so operations apply one at a time and either
// fully commit or fail without side effect.
type Engine struct {
	mu      sync.Mutex
	state   engineState
	emitter events.Emitter
	nowFn   func() int64
	vault   [20]byte
}

// NewEngine constructs a platform engine with default dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn: func() int64 {
			return time.Now().Unix()
		},
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetEmitter configures the event emitter used by the engine.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used for deterministic testing.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

// SetVault configures the account that holds purchase proceeds until they are
// withdrawn by creators or swept by the administrator.
func (e *Engine) SetVault(addr [20]byte) { e.vault = addr }

// Initialize pins the administrator identity and the opening unit price. The
// administrator is set once; subsequent calls with a different address fail.
func (e *Engine) Initialize(admin [20]byte, unitPrice *big.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	existing, ok, err := e.state.Admin()
	if err != nil {
		return err
	}
	if ok {
		if existing != admin {
			return ErrUnauthorized
		}
		return nil
	}
	if unitPrice == nil || unitPrice.Sign() < 0 {
		return ErrInvalidAmount
	}
	if err := e.state.SetAdmin(admin); err != nil {
		return err
	}
	return e.state.SetUnitPrice(unitPrice)
}

func (e *Engine) emit(evt *types.Event) {
	if e == nil || evt == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(WrapEvent(evt))
}

func (e *Engine) now() uint64 {
	if e == nil || e.nowFn == nil {
		return uint64(time.Now().Unix())
	}
	ts := e.nowFn()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

func (e *Engine) isAdmin(addr [20]byte) (bool, error) {
	admin, ok, err := e.state.Admin()
	if err != nil {
		return false, err
	}
	return ok && admin == addr, nil
}

func ensureAccount(acc *types.Account) *types.Account {
	if acc == nil {
		return types.NewAccount()
	}
	if acc.Balance == nil {
		acc.Balance = big.NewInt(0)
	}
	return acc
}

func hexAddr(addr [20]byte) string {
	return "0x" + hex.EncodeToString(addr[:])
}

func newBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func isZeroAddress(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}
