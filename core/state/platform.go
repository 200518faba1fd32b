package state

import (
	"fmt"
	"math/big"

	"creatorpass/native/platform"
)

// SubscriptionGet loads the entitlement record for a subscriber. A missing
// record returns (nil, false, nil).
func (m *Manager) SubscriptionGet(subscriber [20]byte) (*platform.Subscription, bool, error) {
	var stored platform.Subscription
	ok, err := m.KVGet(prefixedAddrKey(subscriptionPrefix, subscriber[:]), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &stored, true, nil
}

// SubscriptionPut persists the entitlement record keyed by its subscriber.
func (m *Manager) SubscriptionPut(sub *platform.Subscription) error {
	if sub == nil {
		return fmt.Errorf("state: subscription record required")
	}
	return m.KVPut(prefixedAddrKey(subscriptionPrefix, sub.Subscriber[:]), sub)
}

// ContentGet loads the catalog record for the supplied identifier.
func (m *Manager) ContentGet(id uint64) (*platform.Content, bool, error) {
	var stored platform.Content
	ok, err := m.KVGet(prefixedIDKey(contentPrefix, id), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &stored, true, nil
}

// ContentPut persists the catalog record keyed by its identifier.
func (m *Manager) ContentPut(content *platform.Content) error {
	if content == nil {
		return fmt.Errorf("state: content record required")
	}
	if content.ID == 0 {
		return fmt.Errorf("state: content id required")
	}
	return m.KVPut(prefixedIDKey(contentPrefix, content.ID), content)
}

// ContentCounter returns the highest assigned content identifier.
func (m *Manager) ContentCounter() (uint64, error) {
	var counter uint64
	if _, err := m.KVGet(counterKeyBytes, &counter); err != nil {
		return 0, err
	}
	return counter, nil
}

// SetContentCounter persists the monotonic content counter.
func (m *Manager) SetContentCounter(counter uint64) error {
	return m.KVPut(counterKeyBytes, counter)
}

// CreatorContentAppend records a published identifier in the creator's index.
func (m *Manager) CreatorContentAppend(creator [20]byte, id uint64) error {
	return m.KVAppendUint64(prefixedAddrKey(creatorIndexPrefix, creator[:]), id)
}

// CreatorContentList returns the identifiers published by the creator in
// publication order.
func (m *Manager) CreatorContentList(creator [20]byte) ([]uint64, error) {
	return m.KVGetUint64List(prefixedAddrKey(creatorIndexPrefix, creator[:]))
}

// CreatorApproved reports allow-list membership for the supplied address.
func (m *Manager) CreatorApproved(addr [20]byte) (bool, error) {
	var approved bool
	if _, err := m.KVGet(prefixedAddrKey(creatorApprovePrefix, addr[:]), &approved); err != nil {
		return false, err
	}
	return approved, nil
}

// SetCreatorApproved toggles allow-list membership for the supplied address.
func (m *Manager) SetCreatorApproved(addr [20]byte, approved bool) error {
	return m.KVPut(prefixedAddrKey(creatorApprovePrefix, addr[:]), approved)
}

// EarningsGet loads the accrued earnings balance for a creator. A missing
// entry reports zero.
func (m *Manager) EarningsGet(creator [20]byte) (*big.Int, error) {
	accrued := new(big.Int)
	ok, err := m.KVGet(prefixedAddrKey(earningsPrefix, creator[:]), accrued)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return accrued, nil
}

// EarningsPut persists the accrued earnings balance for a creator.
func (m *Manager) EarningsPut(creator [20]byte, amount *big.Int) error {
	if amount == nil {
		amount = big.NewInt(0)
	}
	return m.KVPut(prefixedAddrKey(earningsPrefix, creator[:]), amount)
}

// UnitPrice loads the subscription unit price. Missing state reports zero.
func (m *Manager) UnitPrice() (*big.Int, error) {
	price := new(big.Int)
	ok, err := m.KVGet(priceKeyBytes, price)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return price, nil
}

// SetUnitPrice persists the subscription unit price.
func (m *Manager) SetUnitPrice(price *big.Int) error {
	if price == nil {
		price = big.NewInt(0)
	}
	return m.KVPut(priceKeyBytes, price)
}

// Paused reports the platform pause flag.
func (m *Manager) Paused() (bool, error) {
	var paused bool
	if _, err := m.KVGet(pausedKeyBytes, &paused); err != nil {
		return false, err
	}
	return paused, nil
}

// SetPaused persists the platform pause flag.
func (m *Manager) SetPaused(paused bool) error {
	return m.KVPut(pausedKeyBytes, paused)
}

// Admin loads the administrator identity. The boolean reports whether it has
// been pinned yet.
func (m *Manager) Admin() ([20]byte, bool, error) {
	var admin [20]byte
	ok, err := m.KVGet(adminKeyBytes, &admin)
	return admin, ok, err
}

// SetAdmin persists the administrator identity.
func (m *Manager) SetAdmin(addr [20]byte) error {
	return m.KVPut(adminKeyBytes, addr)
}
