package platform

import "math/big"

// SetUnitPrice replaces the subscription unit price. Administrator only; the
// new price is applied unconditionally with no floor or ceiling beyond being
// non-negative.
func (e *Engine) SetUnitPrice(caller [20]byte, price *big.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if price == nil || price.Sign() < 0 {
		return ErrInvalidAmount
	}
	if err := e.state.SetUnitPrice(newBigInt(price)); err != nil {
		return err
	}
	e.emit(priceUpdatedEvent(price.String()))
	return nil
}

// ApproveCreator adds an identity to the creator allow-list. Idempotent.
func (e *Engine) ApproveCreator(caller [20]byte, creator [20]byte) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.SetCreatorApproved(creator, true); err != nil {
		return err
	}
	e.emit(creatorApprovedEvent(hexAddr(creator)))
	return nil
}

// RevokeCreator removes an identity from the creator allow-list. Revocation is
// not retroactive: content already published stays in the catalog.
func (e *Engine) RevokeCreator(caller [20]byte, creator [20]byte) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.SetCreatorApproved(creator, false); err != nil {
		return err
	}
	e.emit(creatorRevokedEvent(hexAddr(creator)))
	return nil
}

// IsApprovedCreator reports allow-list membership.
func (e *Engine) IsApprovedCreator(creator [20]byte) (bool, error) {
	if e == nil || e.state == nil {
		return false, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CreatorApproved(creator)
}

// Pause raises the platform pause flag. The flag is recorded and queryable
// but no money-moving or content-moving operation consults it.
func (e *Engine) Pause(caller [20]byte) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.SetPaused(true); err != nil {
		return err
	}
	e.emit(pausedEvent(hexAddr(caller)))
	return nil
}

// Resume clears the platform pause flag.
func (e *Engine) Resume(caller [20]byte) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if err := e.state.SetPaused(false); err != nil {
		return err
	}
	e.emit(resumedEvent(hexAddr(caller)))
	return nil
}

// Mint credits an account on the value substrate. Administrator only; this is
// the development stand-in for the external value-transfer primitive that
// funds subscriber balances.
func (e *Engine) Mint(caller [20]byte, recipient [20]byte, amount *big.Int) error {
	if e == nil || e.state == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	account, err := e.state.GetAccount(recipient[:])
	if err != nil {
		return err
	}
	account = ensureAccount(account)
	account.Balance = new(big.Int).Add(account.Balance, amount)
	return e.state.PutAccount(recipient[:], account)
}

// Balance reports the spendable balance for an address.
func (e *Engine) Balance(addr [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	account, err := e.state.GetAccount(addr[:])
	if err != nil {
		return nil, err
	}
	return newBigInt(ensureAccount(account).Balance), nil
}

// PlatformParams returns the global parameters for inspection.
func (e *Engine) PlatformParams() (*Params, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	admin, _, err := e.state.Admin()
	if err != nil {
		return nil, err
	}
	price, err := e.state.UnitPrice()
	if err != nil {
		return nil, err
	}
	paused, err := e.state.Paused()
	if err != nil {
		return nil, err
	}
	counter, err := e.state.ContentCounter()
	if err != nil {
		return nil, err
	}
	return &Params{
		Admin:        admin,
		UnitPrice:    newBigInt(price).String(),
		Paused:       paused,
		ContentCount: counter,
	}, nil
}

func (e *Engine) requireAdmin(caller [20]byte) error {
	admin, err := e.isAdmin(caller)
	if err != nil {
		return err
	}
	if !admin {
		return ErrUnauthorized
	}
	return nil
}
