// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios and map each one to its own HTTP
// status, instead of collapsing everything into a single opaque string.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because of
// conflicting state, such as deleting a deal that still has active claims.
// Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrDealNotFound is returned when a deal lookup matches no row.
var ErrDealNotFound = errors.New("deal not found")

// ErrRestaurantNotFound is returned when a restaurant lookup matches no row.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrRestaurantExists is returned when an owner who already operates a
// restaurant attempts to register a second one.
var ErrRestaurantExists = errors.New("owner already has a restaurant")

// Claim issuing failures.  Each maps to a distinct reason surfaced to the
// customer.
var (
    // ErrDealNotClaimable: the deal is inactive, not yet started, or ended.
    ErrDealNotClaimable = errors.New("deal is not currently claimable")
    // ErrDealSoldOut: every unit of the deal's inventory has been claimed.
    ErrDealSoldOut = errors.New("deal is sold out")
    // ErrDuplicateClaim: the user already holds an active claim for the deal.
    ErrDuplicateClaim = errors.New("deal already claimed")
)

// Redemption failures.  The redeem transaction reports exactly which check
// failed so the point-of-sale screen can explain it.
var (
    // ErrCodeNotFound: no claim exists for the presented code.
    ErrCodeNotFound = errors.New("claim code not found")
    // ErrAlreadyRedeemed: the claim was consumed earlier; redemption is not
    // retroactively reversible.
    ErrAlreadyRedeemed = errors.New("claim already redeemed")
    // ErrClaimExpired: the claim's expiry passed before redemption.
    ErrClaimExpired = errors.New("claim expired")
    // ErrRestaurantMismatch: the code belongs to a different restaurant.
    ErrRestaurantMismatch = errors.New("claim belongs to another restaurant")
)
