package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"creatorpass/core/types"
	"creatorpass/native/platform"
	"creatorpass/storage"
)

func testAddr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

func TestSubscriptionRoundTrip(t *testing.T) {
	m := NewManager(storage.NewMemDB())

	_, ok, err := m.SubscriptionGet(testAddr(0x01))
	require.NoError(t, err)
	require.False(t, ok)

	sub := &platform.Subscription{
		Subscriber: testAddr(0x01),
		Active:     true,
		ExpiresAt:  1_700_000_000,
		Tier:       platform.TierPremium,
	}
	require.NoError(t, m.SubscriptionPut(sub))

	loaded, ok, err := m.SubscriptionGet(testAddr(0x01))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sub, loaded)
}

func TestContentRoundTripAndCounter(t *testing.T) {
	m := NewManager(storage.NewMemDB())

	counter, err := m.ContentCounter()
	require.NoError(t, err)
	require.Zero(t, counter)

	content := &platform.Content{
		ID:        1,
		Title:     "intro",
		URI:       "ipfs://intro",
		Creator:   testAddr(0x02),
		Tier:      platform.TierBasic,
		CreatedAt: 1_700_000_000,
		Active:    true,
	}
	require.NoError(t, m.ContentPut(content))
	require.NoError(t, m.SetContentCounter(1))

	loaded, ok, err := m.ContentGet(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, content, loaded)

	counter, err = m.ContentCounter()
	require.NoError(t, err)
	require.Equal(t, uint64(1), counter)

	require.Error(t, m.ContentPut(&platform.Content{}))
}

func TestCreatorIndexDeduplicates(t *testing.T) {
	m := NewManager(storage.NewMemDB())
	creator := testAddr(0x03)

	require.NoError(t, m.CreatorContentAppend(creator, 1))
	require.NoError(t, m.CreatorContentAppend(creator, 2))
	require.NoError(t, m.CreatorContentAppend(creator, 1))

	ids, err := m.CreatorContentList(creator)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2}, ids)
}

func TestCreatorApprovalToggle(t *testing.T) {
	m := NewManager(storage.NewMemDB())
	creator := testAddr(0x04)

	approved, err := m.CreatorApproved(creator)
	require.NoError(t, err)
	require.False(t, approved)

	require.NoError(t, m.SetCreatorApproved(creator, true))
	approved, err = m.CreatorApproved(creator)
	require.NoError(t, err)
	require.True(t, approved)

	require.NoError(t, m.SetCreatorApproved(creator, false))
	approved, err = m.CreatorApproved(creator)
	require.NoError(t, err)
	require.False(t, approved)
}

func TestEarningsAndParams(t *testing.T) {
	m := NewManager(storage.NewMemDB())
	creator := testAddr(0x05)

	accrued, err := m.EarningsGet(creator)
	require.NoError(t, err)
	require.Zero(t, accrued.Sign())

	require.NoError(t, m.EarningsPut(creator, big.NewInt(27)))
	accrued, err = m.EarningsGet(creator)
	require.NoError(t, err)
	require.Equal(t, int64(27), accrued.Int64())

	require.NoError(t, m.SetUnitPrice(big.NewInt(1_000)))
	price, err := m.UnitPrice()
	require.NoError(t, err)
	require.Equal(t, int64(1_000), price.Int64())

	require.NoError(t, m.SetPaused(true))
	paused, err := m.Paused()
	require.NoError(t, err)
	require.True(t, paused)

	_, ok, err := m.Admin()
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, m.SetAdmin(testAddr(0x06)))
	admin, ok, err := m.Admin()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testAddr(0x06), admin)
}

func TestAccountRoundTrip(t *testing.T) {
	m := NewManager(storage.NewMemDB())
	addr := testAddr(0x07)

	acc, err := m.GetAccount(addr[:])
	require.NoError(t, err)
	require.Zero(t, acc.Balance.Sign())

	acc.Balance = big.NewInt(12_345)
	require.NoError(t, m.PutAccount(addr[:], acc))

	loaded, err := m.GetAccount(addr[:])
	require.NoError(t, err)
	require.Equal(t, int64(12_345), loaded.Balance.Int64())

	require.Error(t, m.PutAccount(nil, acc))
	require.Error(t, m.PutAccount(addr[:], nil))
}

// TestStateSurvivesManagerRestart exercises the persisted layout: a second
// manager over the same database must observe every table and scalar.
func TestStateSurvivesManagerRestart(t *testing.T) {
	db := storage.NewMemDB()
	first := NewManager(db)

	require.NoError(t, first.SubscriptionPut(&platform.Subscription{
		Subscriber: testAddr(0x08), Active: true, ExpiresAt: 42, Tier: platform.TierVIP,
	}))
	require.NoError(t, first.ContentPut(&platform.Content{ID: 7, Title: "t", URI: "u", Creator: testAddr(0x09), Tier: platform.TierBasic, Active: true}))
	require.NoError(t, first.SetContentCounter(7))
	require.NoError(t, first.SetCreatorApproved(testAddr(0x09), true))
	require.NoError(t, first.EarningsPut(testAddr(0x09), big.NewInt(9)))
	require.NoError(t, first.SetUnitPrice(big.NewInt(100)))
	require.NoError(t, first.SetPaused(true))
	require.NoError(t, first.SetAdmin(testAddr(0x0A)))
	holder := testAddr(0x08)
	require.NoError(t, first.PutAccount(holder[:], &types.Account{Balance: big.NewInt(5)}))

	restarted := NewManager(db)

	sub, ok, err := restarted.SubscriptionGet(testAddr(0x08))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(42), sub.ExpiresAt)

	content, ok, err := restarted.ContentGet(7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "u", content.URI)

	counter, err := restarted.ContentCounter()
	require.NoError(t, err)
	require.Equal(t, uint64(7), counter)

	approved, err := restarted.CreatorApproved(testAddr(0x09))
	require.NoError(t, err)
	require.True(t, approved)

	accrued, err := restarted.EarningsGet(testAddr(0x09))
	require.NoError(t, err)
	require.Equal(t, int64(9), accrued.Int64())

	price, err := restarted.UnitPrice()
	require.NoError(t, err)
	require.Equal(t, int64(100), price.Int64())

	paused, err := restarted.Paused()
	require.NoError(t, err)
	require.True(t, paused)

	admin, ok, err := restarted.Admin()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testAddr(0x0A), admin)

	acc, err := restarted.GetAccount(holder[:])
	require.NoError(t, err)
	require.Equal(t, int64(5), acc.Balance.Int64())
}
