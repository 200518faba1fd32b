package platform

import "math/big"

// WithdrawEarnings settles the caller's accrued earnings. The ledger entry is
// cleared strictly before the value movement so a re-entering downstream
// transfer can never double-withdraw.
func (e *Engine) WithdrawEarnings(caller [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if isZeroAddress(e.vault) {
		return nil, errVaultNotSet
	}
	accrued, err := e.state.EarningsGet(caller)
	if err != nil {
		return nil, err
	}
	amount := newBigInt(accrued)
	if amount.Sign() == 0 {
		return nil, ErrNothingToWithdraw
	}
	vaultAccount, err := e.state.GetAccount(e.vault[:])
	if err != nil {
		return nil, err
	}
	vaultAccount = ensureAccount(vaultAccount)
	if vaultAccount.Balance.Cmp(amount) < 0 {
		return nil, ErrVaultUnderfunded
	}
	if err := e.state.EarningsPut(caller, big.NewInt(0)); err != nil {
		return nil, err
	}
	vaultAccount.Balance = new(big.Int).Sub(vaultAccount.Balance, amount)
	if err := e.state.PutAccount(e.vault[:], vaultAccount); err != nil {
		return nil, err
	}
	callerAccount, err := e.state.GetAccount(caller[:])
	if err != nil {
		return nil, err
	}
	callerAccount = ensureAccount(callerAccount)
	callerAccount.Balance = new(big.Int).Add(callerAccount.Balance, amount)
	if err := e.state.PutAccount(caller[:], callerAccount); err != nil {
		return nil, err
	}
	e.emit(earningsWithdrawnEvent(hexAddr(caller), amount.String()))
	return amount, nil
}

// Earnings returns the caller's accrued, not-yet-withdrawn balance.
func (e *Engine) Earnings(creator [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	accrued, err := e.state.EarningsGet(creator)
	if err != nil {
		return nil, err
	}
	return newBigInt(accrued), nil
}

// SweepFees moves the entire vault balance to the administrator. No accounting
// separation is enforced between platform fees and uncollected creator
// earnings; the sweep takes the full current balance.
func (e *Engine) SweepFees(caller [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	admin, err := e.isAdmin(caller)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrUnauthorized
	}
	if isZeroAddress(e.vault) {
		return nil, errVaultNotSet
	}
	vaultAccount, err := e.state.GetAccount(e.vault[:])
	if err != nil {
		return nil, err
	}
	vaultAccount = ensureAccount(vaultAccount)
	amount := newBigInt(vaultAccount.Balance)
	if amount.Sign() == 0 {
		return nil, ErrNothingToSweep
	}
	vaultAccount.Balance = big.NewInt(0)
	if err := e.state.PutAccount(e.vault[:], vaultAccount); err != nil {
		return nil, err
	}
	adminAccount, err := e.state.GetAccount(caller[:])
	if err != nil {
		return nil, err
	}
	adminAccount = ensureAccount(adminAccount)
	adminAccount.Balance = new(big.Int).Add(adminAccount.Balance, amount)
	if err := e.state.PutAccount(caller[:], adminAccount); err != nil {
		return nil, err
	}
	e.emit(feesSweptEvent(hexAddr(caller), amount.String()))
	return amount, nil
}
