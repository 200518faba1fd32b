package platform

import "errors"

var (
	errNilState    = errors.New("platform engine: state not configured")
	errVaultNotSet = errors.New("platform engine: vault not configured")

	// ErrUnauthorized is returned when the caller lacks the required role:
	// administrator, approved creator, or content owner.
	ErrUnauthorized = errors.New("platform engine: unauthorized")
	// ErrInvalidTier is returned when a tier outside {1,2,3} is supplied.
	ErrInvalidTier = errors.New("platform engine: invalid tier")
	// ErrInvalidAmount is returned when a monetary amount is missing or not positive.
	ErrInvalidAmount = errors.New("platform engine: amount must be positive")
	// ErrInsufficientPayment is returned when a purchase does not cover the tier price.
	ErrInsufficientPayment = errors.New("platform engine: payment below tier price")
	// ErrInsufficientFunds is returned when the caller's balance cannot cover the payment.
	ErrInsufficientFunds = errors.New("platform engine: insufficient balance")
	// ErrNotApprovedCreator is returned when a caller outside the creator
	// allow-list attempts to publish.
	ErrNotApprovedCreator = errors.New("platform engine: creator not approved")
	// ErrEmptyTitle is returned when content is published without a title.
	ErrEmptyTitle = errors.New("platform engine: title required")
	// ErrEmptyURI is returned when content is published without a locator.
	ErrEmptyURI = errors.New("platform engine: uri required")
	// ErrInvalidContentID is returned for identifiers outside [1, counter].
	ErrInvalidContentID = errors.New("platform engine: invalid content id")
	// ErrContentInactive is returned when accessing deactivated content.
	ErrContentInactive = errors.New("platform engine: content inactive")
	// ErrTierTooLow is returned when the subscription tier cannot unlock the content.
	ErrTierTooLow = errors.New("platform engine: subscription tier too low")
	// ErrNoActiveSubscription is returned when the caller holds no live subscription.
	ErrNoActiveSubscription = errors.New("platform engine: no active subscription")
	// ErrNothingToWithdraw is returned when the earnings balance is zero.
	ErrNothingToWithdraw = errors.New("platform engine: nothing to withdraw")
	// ErrNothingToSweep is returned when the vault holds no funds to sweep.
	ErrNothingToSweep = errors.New("platform engine: nothing to sweep")
	// ErrVaultUnderfunded is returned when the vault cannot cover a withdrawal.
	ErrVaultUnderfunded = errors.New("platform engine: vault underfunded")
)
