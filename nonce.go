package nearkit

import (
	"sync"

	"github.com/nearkit/near-kit-go/types"
)

// nonceManager caches the last used nonce per (accountID, publicKey).
// Reservation is a critical section: concurrent sends on the same key
// must never observe the same pre-increment value, or all but one of
// them is silently rejected by the network.
type nonceManager struct {
	mu      sync.Mutex
	entries map[string]*nonceEntry
}

type nonceEntry struct {
	mu    sync.Mutex
	known bool // false when Unknown or Invalidated
	nonce uint64
}

func newNonceManager() *nonceManager {
	return &nonceManager{entries: make(map[string]*nonceEntry)}
}

func nonceKey(accountID string, publicKey types.PublicKey) string {
	return accountID + "/" + publicKey.String()
}

func (m *nonceManager) entry(accountID string, publicKey types.PublicKey) *nonceEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := nonceKey(accountID, publicKey)
	e, ok := m.entries[key]
	if !ok {
		e = &nonceEntry{}
		m.entries[key] = e
	}
	return e
}

// reserveNext atomically increment and return the next nonce for the
// key. On a cache miss (or after invalidation) fetch re-reads the
// current on-chain access key nonce; the entry lock is held across the
// fetch so concurrent reservations serialize.
func (m *nonceManager) reserveNext(accountID string, publicKey types.PublicKey, fetch func() (uint64, error)) (uint64, error) {
	e := m.entry(accountID, publicKey)
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.known {
		current, err := fetch()
		if err != nil {
			return 0, err
		}
		e.nonce = current
		e.known = true
	}
	e.nonce++
	return e.nonce, nil
}

// invalidate force a fresh network fetch on the next reservation.
// Called when the network reports a nonce conflict.
func (m *nonceManager) invalidate(accountID string, publicKey types.PublicKey) {
	e := m.entry(accountID, publicKey)
	e.mu.Lock()
	e.known = false
	e.mu.Unlock()
}

// cached return the cached nonce and whether it is fresh, for tests
// and diagnostics.
func (m *nonceManager) cached(accountID string, publicKey types.PublicKey) (uint64, bool) {
	e := m.entry(accountID, publicKey)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nonce, e.known
}
