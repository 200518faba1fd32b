package platform

import (
	"strconv"

	"creatorpass/core/events"
	"creatorpass/core/types"
)

const (
	// EventTypeSubscriptionPurchased is emitted on every purchase or renewal.
	EventTypeSubscriptionPurchased = "platform.subscription.purchased"
	// EventTypeContentPublished is emitted when a creator publishes content.
	EventTypeContentPublished = "platform.content.published"
	// EventTypeContentDeactivated is emitted when content is taken down.
	EventTypeContentDeactivated = "platform.content.deactivated"
	// EventTypeContentAccessed is emitted on every successful access.
	EventTypeContentAccessed = "platform.content.accessed"
	// EventTypeEarningsWithdrawn is emitted when a creator withdraws earnings.
	EventTypeEarningsWithdrawn = "platform.earnings.withdrawn"
	// EventTypeCreatorApproved is emitted when the administrator approves a creator.
	EventTypeCreatorApproved = "platform.creator.approved"
	// EventTypeCreatorRevoked is emitted when the administrator revokes a creator.
	EventTypeCreatorRevoked = "platform.creator.revoked"
	// EventTypePriceUpdated is emitted when the subscription unit price changes.
	EventTypePriceUpdated = "platform.price.updated"
	// EventTypePaused is emitted when the administrator pauses the platform.
	EventTypePaused = "platform.paused"
	// EventTypeResumed is emitted when the administrator resumes the platform.
	EventTypeResumed = "platform.resumed"
	// EventTypeFeesSwept is emitted when the vault balance is swept to the administrator.
	EventTypeFeesSwept = "platform.fees.swept"
)

type eventEnvelope struct {
	evt *types.Event
}

func (e eventEnvelope) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e eventEnvelope) Event() *types.Event { return e.evt }

// WrapEvent converts a raw event payload into the emitter-friendly envelope.
func WrapEvent(evt *types.Event) events.Event { return eventEnvelope{evt: evt} }

func subscriptionPurchasedEvent(subscriber string, expiresAt uint64, tier uint8) *types.Event {
	return &types.Event{
		Type: EventTypeSubscriptionPurchased,
		Attributes: map[string]string{
			"subscriber": subscriber,
			"expiresAt":  strconv.FormatUint(expiresAt, 10),
			"tier":       strconv.FormatUint(uint64(tier), 10),
		},
	}
}

func contentPublishedEvent(id uint64, creator string, title string, tier uint8) *types.Event {
	return &types.Event{
		Type: EventTypeContentPublished,
		Attributes: map[string]string{
			"contentId": strconv.FormatUint(id, 10),
			"creator":   creator,
			"title":     title,
			"tier":      strconv.FormatUint(uint64(tier), 10),
		},
	}
}

func contentDeactivatedEvent(id uint64, caller string) *types.Event {
	return &types.Event{
		Type: EventTypeContentDeactivated,
		Attributes: map[string]string{
			"contentId": strconv.FormatUint(id, 10),
			"caller":    caller,
		},
	}
}

func contentAccessedEvent(subscriber string, id uint64) *types.Event {
	return &types.Event{
		Type: EventTypeContentAccessed,
		Attributes: map[string]string{
			"subscriber": subscriber,
			"contentId":  strconv.FormatUint(id, 10),
		},
	}
}

func earningsWithdrawnEvent(creator string, amount string) *types.Event {
	return &types.Event{
		Type: EventTypeEarningsWithdrawn,
		Attributes: map[string]string{
			"creator": creator,
			"amount":  amount,
		},
	}
}

func creatorApprovedEvent(creator string) *types.Event {
	return &types.Event{
		Type:       EventTypeCreatorApproved,
		Attributes: map[string]string{"creator": creator},
	}
}

func creatorRevokedEvent(creator string) *types.Event {
	return &types.Event{
		Type:       EventTypeCreatorRevoked,
		Attributes: map[string]string{"creator": creator},
	}
}

func priceUpdatedEvent(price string) *types.Event {
	return &types.Event{
		Type:       EventTypePriceUpdated,
		Attributes: map[string]string{"price": price},
	}
}

func pausedEvent(admin string) *types.Event {
	return &types.Event{
		Type:       EventTypePaused,
		Attributes: map[string]string{"admin": admin},
	}
}

func resumedEvent(admin string) *types.Event {
	return &types.Event{
		Type:       EventTypeResumed,
		Attributes: map[string]string{"admin": admin},
	}
}

func feesSweptEvent(admin string, amount string) *types.Event {
	return &types.Event{
		Type: EventTypeFeesSwept,
		Attributes: map[string]string{
			"admin":  admin,
			"amount": amount,
		},
	}
}
