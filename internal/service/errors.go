package service

import "errors"

// Sentinel errors shared across services. Handlers translate these to HTTP
// statuses; anything else is treated as an upstream failure and surfaced as
// retryable, never as a silently zeroed result.
var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrProductNotFound = errors.New("product not found")
	ErrSaleNotFound    = errors.New("sale not found")
	ErrNotOwner        = errors.New("resource does not belong to this store")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadCredentials  = errors.New("invalid credentials")
)
