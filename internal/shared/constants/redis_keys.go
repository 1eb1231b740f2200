package constants

import "time"

// Redis keyspace for the parkpass checkout service.
// Pattern: parkpass:{module}:{operation}:{identifier}

const KEY_PREFIX = "parkpass"

// ================== CATALOG MODULE ==================

const (
	// Full price catalog snapshot (cache-aside, TTL based; the catalog is
	// read-only from this service so there is no invalidation path)
	CACHE_KEY_PRICE_CATALOG = KEY_PREFIX + ":catalog:prices:all"
)

const (
	TTL_PRICE_CATALOG = 1 * time.Hour
)

// ================== CHECKOUT MODULE ==================

const (
	// One JSON snapshot of the ReservationSession per session, written
	// synchronously on every mutation
	KEY_CHECKOUT_SESSION = KEY_PREFIX + ":checkout:session:uuid:" // + session-id

	// Per-session submission lock (SETNX); guards against double submits
	KEY_CHECKOUT_SUBMIT_LOCK = KEY_PREFIX + ":checkout:submit_lock:uuid:" // + session-id
)

// ================== HELPER FUNCTIONS ==================

func BuildSessionKey(sessionID string) string {
	return KEY_CHECKOUT_SESSION + sessionID
}

func BuildSubmitLockKey(sessionID string) string {
	return KEY_CHECKOUT_SUBMIT_LOCK + sessionID
}
