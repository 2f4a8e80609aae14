package registry

import (
	"sort"
	"sync"

	"github.com/Natek01/full-stack-chat-app/domain/presence"
)

// Store is the authoritative mapping from live connection id to joined
// user profile. It is the single source of truth for who is online; all
// mutations are atomic behind the mutex.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*presence.UserProfile
}

// NewStore creates an empty registry store.
func NewStore() *Store {
	return &Store{
		profiles: make(map[string]*presence.UserProfile),
	}
}

// Register inserts or overwrites the profile for a connection id.
// Overwriting is allowed (re-join). The registry performs no username
// validation; empty and duplicate usernames are accepted.
func (s *Store) Register(connectionID, username, avatar string) presence.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := &presence.UserProfile{
		ConnectionID: connectionID,
		Username:     username,
		Avatar:       avatar,
	}
	s.profiles[connectionID] = profile
	return *profile
}

// Remove deletes and returns the profile for a connection id. Removing
// a connection that never joined is a no-op, not an error.
func (s *Store) Remove(connectionID string) (presence.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.profiles[connectionID]
	if !exists {
		return presence.UserProfile{}, false
	}
	delete(s.profiles, connectionID)
	return *profile, true
}

// Get returns the profile for a connection id.
func (s *Store) Get(connectionID string) (presence.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.profiles[connectionID]
	if !exists {
		return presence.UserProfile{}, false
	}
	return *profile, true
}

// FindByUsername returns the first profile claiming a username.
// Usernames are not unique; iteration order is stable (sorted by
// connection id) so repeated lookups agree while duplicates exist.
func (s *Store) FindByUsername(username string) (presence.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.sortedIDs() {
		if s.profiles[id].Username == username {
			return *s.profiles[id], true
		}
	}
	return presence.UserProfile{}, false
}

// List returns a snapshot copy of all joined profiles, safe for the
// caller to serialize without further synchronization.
func (s *Store) List() []presence.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]presence.UserProfile, 0, len(s.profiles))
	for _, id := range s.sortedIDs() {
		result = append(result, *s.profiles[id])
	}
	return result
}

// Len returns the number of joined profiles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// sortedIDs returns connection ids in sorted order. Callers must hold
// at least a read lock.
func (s *Store) sortedIDs() []string {
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
