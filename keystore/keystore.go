package keystore

import (
	"errors"
	"fmt"
	"sync"
)

// ErrKeyNotFound no key registered for the requested account
var ErrKeyNotFound = errors.New("key not found in key store")

// KeyStore is the key storage boundary consumed by the signing engine.
// Concrete backends are swappable without changing the engine.
type KeyStore interface {
	// Get return a signing key for the account
	Get(accountID string) (*KeyPair, error)
	// Add register a signing key for the account
	Add(accountID string, key *KeyPair) error
}

// MemoryKeyStore is an in-memory KeyStore safe for concurrent use.
type MemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*KeyPair
}

// NewMemoryKeyStore new empty in-memory key store
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{keys: make(map[string]*KeyPair)}
}

// Get impl KeyStore
func (s *MemoryKeyStore) Get(accountID string) (*KeyPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %q", ErrKeyNotFound, accountID)
	}
	return key, nil
}

// Add impl KeyStore
func (s *MemoryKeyStore) Add(accountID string, key *KeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[accountID] = key
	return nil
}

// RotatingKeyStore holds several keys per account and hands them out
// round-robin. Each key has its own access key nonce on-chain, so
// concurrent senders using different keys do not contend on one nonce
// sequence. All keys must be registered on-chain beforehand.
type RotatingKeyStore struct {
	mu   sync.Mutex
	keys map[string][]*KeyPair
	next map[string]int
}

// NewRotatingKeyStore new empty rotating key store
func NewRotatingKeyStore() *RotatingKeyStore {
	return &RotatingKeyStore{
		keys: make(map[string][]*KeyPair),
		next: make(map[string]int),
	}
}

// Get impl KeyStore; returns the account's keys in rotation
func (s *RotatingKeyStore) Get(accountID string) (*KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.keys[accountID]
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: account %q", ErrKeyNotFound, accountID)
	}
	idx := s.next[accountID] % len(keys)
	s.next[accountID] = idx + 1
	return keys[idx], nil
}

// Add impl KeyStore; appends to the account's rotation
func (s *RotatingKeyStore) Add(accountID string, key *KeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[accountID] = append(s.keys[accountID], key)
	return nil
}
