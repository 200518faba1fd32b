package platform

import (
	"errors"
	"testing"
)

func approveAndPublish(t *testing.T, engine *Engine, creator [20]byte, title, uri string, tier uint8) *Content {
	t.Helper()
	if err := engine.ApproveCreator(addr(0x01), creator); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	content, err := engine.PublishContent(creator, title, uri, tier)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	return content
}

func TestPublishRequiresApproval(t *testing.T) {
	engine, _ := newTestEngine(100, 0)
	if _, err := engine.PublishContent(addr(0x20), "title", "ipfs://x", TierBasic); !errors.Is(err, ErrNotApprovedCreator) {
		t.Fatalf("expected approval gate, got %v", err)
	}
}

func TestPublishValidatesFields(t *testing.T) {
	engine, _ := newTestEngine(100, 0)
	creator := addr(0x20)
	if err := engine.ApproveCreator(addr(0x01), creator); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := engine.PublishContent(creator, "   ", "ipfs://x", TierBasic); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected empty title, got %v", err)
	}
	if _, err := engine.PublishContent(creator, "title", "", TierBasic); !errors.Is(err, ErrEmptyURI) {
		t.Fatalf("expected empty uri, got %v", err)
	}
	if _, err := engine.PublishContent(creator, "title", "ipfs://x", 9); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected invalid tier, got %v", err)
	}
}

func TestContentIDsSequentialAndNeverReused(t *testing.T) {
	engine, _ := newTestEngine(100, 0)
	creator := addr(0x20)
	first := approveAndPublish(t, engine, creator, "one", "ipfs://1", TierBasic)
	if first.ID != 1 {
		t.Fatalf("identifiers must start at 1, got %d", first.ID)
	}
	second, err := engine.PublishContent(creator, "two", "ipfs://2", TierPremium)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("expected id 2, got %d", second.ID)
	}
	if _, err := engine.DeactivateContent(creator, 1); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	third, err := engine.PublishContent(creator, "three", "ipfs://3", TierVIP)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if third.ID != 3 {
		t.Fatalf("deactivation must not recycle identifiers, got %d", third.ID)
	}
}

func TestDeactivateAuthorization(t *testing.T) {
	engine, _ := newTestEngine(100, 0)
	creator := addr(0x20)
	content := approveAndPublish(t, engine, creator, "one", "ipfs://1", TierBasic)

	if _, err := engine.DeactivateContent(addr(0x30), content.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("stranger deactivation must fail, got %v", err)
	}
	// The administrator may take down any content.
	if _, err := engine.DeactivateContent(addr(0x01), content.ID); err != nil {
		t.Fatalf("admin deactivate failed: %v", err)
	}
}

func TestDeactivateValidatesRange(t *testing.T) {
	engine, _ := newTestEngine(100, 0)
	for _, id := range []uint64{0, 1, 42} {
		if _, err := engine.DeactivateContent(addr(0x01), id); !errors.Is(err, ErrInvalidContentID) {
			t.Fatalf("id %d: expected range rejection, got %v", id, err)
		}
	}
}

func TestContentDetailsHidesLocator(t *testing.T) {
	engine, _ := newTestEngine(100, 0)
	creator := addr(0x20)
	published := approveAndPublish(t, engine, creator, "one", "ipfs://secret", TierBasic)

	details, err := engine.ContentDetails(published.ID)
	if err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if details.URI != "" {
		t.Fatalf("details must not leak the locator, got %q", details.URI)
	}
	if details.Title != "one" || details.Creator != creator || details.Tier != TierBasic || !details.Active {
		t.Fatalf("unexpected details %+v", details)
	}
}

func TestRevokeCreatorNotRetroactive(t *testing.T) {
	engine, _ := newTestEngine(100, 0)
	creator := addr(0x20)
	content := approveAndPublish(t, engine, creator, "one", "ipfs://1", TierBasic)

	if err := engine.RevokeCreator(addr(0x01), creator); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	details, err := engine.ContentDetails(content.ID)
	if err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if !details.Active {
		t.Fatal("revoking approval must not deactivate published content")
	}
	if _, err := engine.PublishContent(creator, "two", "ipfs://2", TierBasic); !errors.Is(err, ErrNotApprovedCreator) {
		t.Fatalf("revoked creator must not publish, got %v", err)
	}
}

func TestCreatorContentListing(t *testing.T) {
	engine, _ := newTestEngine(100, 0)
	creator := addr(0x20)
	approveAndPublish(t, engine, creator, "one", "ipfs://1", TierBasic)
	if _, err := engine.PublishContent(creator, "two", "ipfs://2", TierPremium); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	listed, err := engine.CreatorContent(creator)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != 1 || listed[1].ID != 2 {
		t.Fatalf("unexpected listing %+v", listed)
	}
	for _, content := range listed {
		if content.URI != "" {
			t.Fatalf("listing must not leak locators, got %q", content.URI)
		}
	}
}
