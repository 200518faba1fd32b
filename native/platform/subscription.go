package platform

import "math/big"

// PurchaseSubscription buys or renews the caller's entitlement. A live
// subscription is extended from its current expiry, so renewal stacks time;
// the stored tier is always overwritten with the newly purchased one. The
// payment is debited from the subscriber's account in full and accumulates in
// the vault.
func (e *Engine) PurchaseSubscription(subscriber [20]byte, tier uint8, payment *big.Int) (*Subscription, error) {
	if e == nil || e.state == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !ValidTier(tier) {
		return nil, ErrInvalidTier
	}
	if payment == nil || payment.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if isZeroAddress(e.vault) {
		return nil, errVaultNotSet
	}
	price, err := e.state.UnitPrice()
	if err != nil {
		return nil, err
	}
	cost := new(big.Int).Mul(newBigInt(price), big.NewInt(int64(tier)))
	if payment.Cmp(cost) < 0 {
		return nil, ErrInsufficientPayment
	}
	subscriberAccount, err := e.state.GetAccount(subscriber[:])
	if err != nil {
		return nil, err
	}
	subscriberAccount = ensureAccount(subscriberAccount)
	if subscriberAccount.Balance.Cmp(payment) < 0 {
		return nil, ErrInsufficientFunds
	}
	subscriberAccount.Balance = new(big.Int).Sub(subscriberAccount.Balance, payment)
	vaultAccount, err := e.state.GetAccount(e.vault[:])
	if err != nil {
		return nil, err
	}
	vaultAccount = ensureAccount(vaultAccount)
	vaultAccount.Balance = new(big.Int).Add(vaultAccount.Balance, payment)
	if err := e.state.PutAccount(subscriber[:], subscriberAccount); err != nil {
		return nil, err
	}
	if err := e.state.PutAccount(e.vault[:], vaultAccount); err != nil {
		return nil, err
	}

	now := e.now()
	duration := TierDuration(tier)
	sub, ok, err := e.state.SubscriptionGet(subscriber)
	if err != nil {
		return nil, err
	}
	var expiresAt uint64
	if ok && sub.EffectiveActive(now) {
		expiresAt = sub.ExpiresAt + duration
	} else {
		expiresAt = now + duration
	}
	updated := &Subscription{
		Subscriber: subscriber,
		Active:     true,
		ExpiresAt:  expiresAt,
		Tier:       tier,
	}
	if err := e.state.SubscriptionPut(updated); err != nil {
		return nil, err
	}
	e.emit(subscriptionPurchasedEvent(hexAddr(subscriber), expiresAt, tier))
	return updated.Clone(), nil
}

// SubscriptionStatus reports the stored record together with its effective
// validity at the current instant. Expiry is never applied eagerly; it is
// derived from the timestamp comparison at the moment of the query. A
// subscriber without a record reports an inactive zero-value status.
func (e *Engine) SubscriptionStatus(subscriber [20]byte) (*Subscription, bool, error) {
	if e == nil || e.state == nil {
		return nil, false, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	sub, ok, err := e.state.SubscriptionGet(subscriber)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Subscription{Subscriber: subscriber}, false, nil
	}
	return sub.Clone(), sub.EffectiveActive(e.now()), nil
}
