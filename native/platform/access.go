package platform

import "math/big"

// viewRewardDivisor derives the per-view reward from the unit price; the
// creator keeps creatorShareBps of it and the remainder stays in the vault as
// the platform's share.
const (
	viewRewardDivisor = 100
	creatorShareBps   = 9_000
)

// AccessContent gates a view behind the subscriber's entitlement and, on
// success, credits the creator's earnings ledger with their share of the view
// reward before returning the content locator. The entitlement is checked
// before the content identifier is even validated. A unit price below 100
// yields a zero reward; the access still succeeds.
func (e *Engine) AccessContent(subscriber [20]byte, id uint64) (*Content, *big.Int, error) {
	if e == nil || e.state == nil {
		return nil, nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	sub, ok, err := e.state.SubscriptionGet(subscriber)
	if err != nil {
		return nil, nil, err
	}
	if !ok || !sub.EffectiveActive(now) {
		return nil, nil, ErrNoActiveSubscription
	}
	content, err := e.contentInRange(id)
	if err != nil {
		return nil, nil, err
	}
	if !content.Active {
		return nil, nil, ErrContentInactive
	}
	if sub.Tier < content.Tier {
		return nil, nil, ErrTierTooLow
	}
	price, err := e.state.UnitPrice()
	if err != nil {
		return nil, nil, err
	}
	viewReward := new(big.Int).Div(newBigInt(price), big.NewInt(viewRewardDivisor))
	creatorCut := new(big.Int).Mul(viewReward, big.NewInt(creatorShareBps))
	creatorCut = creatorCut.Div(creatorCut, big.NewInt(10_000))
	if creatorCut.Sign() > 0 {
		accrued, err := e.state.EarningsGet(content.Creator)
		if err != nil {
			return nil, nil, err
		}
		accrued = new(big.Int).Add(newBigInt(accrued), creatorCut)
		if err := e.state.EarningsPut(content.Creator, accrued); err != nil {
			return nil, nil, err
		}
	}
	e.emit(contentAccessedEvent(hexAddr(subscriber), id))
	return content.Clone(), creatorCut, nil
}
