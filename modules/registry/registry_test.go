package registry

import (
	"fmt"
	"testing"
)

func TestStore_Register(t *testing.T) {
	store := NewStore()

	profile := store.Register("conn-1", "alice", "👤")

	if profile.ConnectionID != "conn-1" {
		t.Errorf("Register() ConnectionID = %q, want %q", profile.ConnectionID, "conn-1")
	}
	if profile.Username != "alice" {
		t.Errorf("Register() Username = %q, want %q", profile.Username, "alice")
	}
	if profile.Avatar != "👤" {
		t.Errorf("Register() Avatar = %q, want %q", profile.Avatar, "👤")
	}
}

func TestStore_Register_DistinctConnections(t *testing.T) {
	store := NewStore()

	const n = 10
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("conn-%d", i)
		store.Register(id, fmt.Sprintf("user-%d", i), "👤")
	}

	if store.Len() != n {
		t.Fatalf("Len() = %d, want %d", store.Len(), n)
	}

	for i := 0; i < n; i++ {
		id := fmt.Sprintf("conn-%d", i)
		profile, ok := store.Get(id)
		if !ok {
			t.Fatalf("Get(%q) not found", id)
		}
		if profile.ConnectionID != id {
			t.Errorf("Get(%q) ConnectionID = %q", id, profile.ConnectionID)
		}
	}
}

func TestStore_Register_Overwrite(t *testing.T) {
	store := NewStore()

	store.Register("conn-1", "alice", "👤")
	store.Register("conn-1", "alice2", "🦊")

	if store.Len() != 1 {
		t.Fatalf("Len() after re-join = %d, want 1", store.Len())
	}

	profile, _ := store.Get("conn-1")
	if profile.Username != "alice2" {
		t.Errorf("Get() Username = %q, want %q", profile.Username, "alice2")
	}
	if profile.Avatar != "🦊" {
		t.Errorf("Get() Avatar = %q, want %q", profile.Avatar, "🦊")
	}
}

func TestStore_Register_DuplicateUsernames(t *testing.T) {
	store := NewStore()

	// Duplicate usernames are accepted; no uniqueness is enforced.
	store.Register("conn-1", "alice", "👤")
	store.Register("conn-2", "alice", "🦊")

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestStore_Remove(t *testing.T) {
	store := NewStore()
	store.Register("conn-1", "alice", "👤")

	tests := []struct {
		name         string
		connectionID string
		wantFound    bool
		wantLen      int
	}{
		{
			name:         "remove joined connection",
			connectionID: "conn-1",
			wantFound:    true,
			wantLen:      0,
		},
		{
			name:         "remove never-joined connection is a no-op",
			connectionID: "conn-unknown",
			wantFound:    false,
			wantLen:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, found := store.Remove(tt.connectionID)

			if found != tt.wantFound {
				t.Fatalf("Remove() found = %v, want %v", found, tt.wantFound)
			}
			if found && profile.Username != "alice" {
				t.Errorf("Remove() Username = %q, want %q", profile.Username, "alice")
			}
			if store.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", store.Len(), tt.wantLen)
			}
		})
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	store := NewStore()

	if _, ok := store.Get("conn-unknown"); ok {
		t.Error("Get() found a profile for a never-joined connection")
	}
}

func TestStore_FindByUsername(t *testing.T) {
	store := NewStore()
	store.Register("conn-b", "alice", "🦊")
	store.Register("conn-a", "alice", "👤")
	store.Register("conn-c", "bob", "🐻")

	tests := []struct {
		name       string
		username   string
		wantFound  bool
		wantConnID string
	}{
		{
			name:       "unique username",
			username:   "bob",
			wantFound:  true,
			wantConnID: "conn-c",
		},
		{
			name:       "duplicate username returns first match in stable order",
			username:   "alice",
			wantFound:  true,
			wantConnID: "conn-a",
		},
		{
			name:      "unknown username",
			username:  "carol",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, found := store.FindByUsername(tt.username)

			if found != tt.wantFound {
				t.Fatalf("FindByUsername() found = %v, want %v", found, tt.wantFound)
			}
			if found && profile.ConnectionID != tt.wantConnID {
				t.Errorf("FindByUsername() ConnectionID = %q, want %q", profile.ConnectionID, tt.wantConnID)
			}
		})
	}
}

func TestStore_List_Snapshot(t *testing.T) {
	store := NewStore()
	store.Register("conn-1", "alice", "👤")
	store.Register("conn-2", "bob", "🐻")

	snapshot := store.List()
	if len(snapshot) != 2 {
		t.Fatalf("List() length = %d, want 2", len(snapshot))
	}

	// Mutating the registry after the snapshot must not affect it.
	store.Register("conn-3", "carol", "🦊")
	if len(snapshot) != 2 {
		t.Errorf("snapshot length changed to %d after mutation", len(snapshot))
	}

	// Mutating the snapshot must not affect the registry.
	snapshot[0].Username = "mallory"
	profile, _ := store.Get(snapshot[0].ConnectionID)
	if profile.Username == "mallory" {
		t.Error("mutating the snapshot leaked into the registry")
	}
}

func TestStore_List_Empty(t *testing.T) {
	store := NewStore()

	snapshot := store.List()
	if len(snapshot) != 0 {
		t.Errorf("List() length = %d, want 0", len(snapshot))
	}
}
