package entity

import (
	"errors"
	"time"
)

// SessionStateVersion is the current schema version for session state.
// Increment when making breaking changes to the serialization format.
const SessionStateVersion = 1

// SessionID identifies a saved set of tabs.
type SessionID string

// ErrInvalidSessionState is returned when a snapshot cannot be stored.
var ErrInvalidSessionState = errors.New("invalid session state")

// SessionState represents a complete snapshot of a browser session.
// This is serialized to JSON and stored in the database.
type SessionState struct {
	Version        int           `json:"version"`
	SessionID      SessionID     `json:"session_id"`
	Tabs           []TabSnapshot `json:"tabs"`
	ActiveTabIndex int           `json:"active_tab_index"`
	SavedAt        time.Time     `json:"saved_at"`
}

// TabSnapshot captures the state of a single tab.
type TabSnapshot struct {
	ID       TabID  `json:"id"`
	Name     string `json:"name"`
	URI      string `json:"uri"`
	Position int    `json:"position"`
	IsPinned bool   `json:"is_pinned"`
}

// SnapshotFromTabList creates a SessionState from a live TabList.
func SnapshotFromTabList(sessionID SessionID, tabs *TabList) *SessionState {
	if tabs == nil {
		return &SessionState{
			Version:   SessionStateVersion,
			SessionID: sessionID,
			Tabs:      []TabSnapshot{},
			SavedAt:   time.Now(),
		}
	}

	snapTabs := make([]TabSnapshot, 0, len(tabs.Tabs))
	activeTabIndex := 0

	for i, tab := range tabs.Tabs {
		if tab.ID == tabs.ActiveTabID {
			activeTabIndex = i
		}
		snapTabs = append(snapTabs, TabSnapshot{
			ID:       tab.ID,
			Name:     tab.Name,
			URI:      tab.URI,
			Position: tab.Position,
			IsPinned: tab.IsPinned,
		})
	}

	return &SessionState{
		Version:        SessionStateVersion,
		SessionID:      sessionID,
		Tabs:           snapTabs,
		ActiveTabIndex: activeTabIndex,
		SavedAt:        time.Now(),
	}
}

// IDGenerator is a function that generates unique IDs.
type IDGenerator func() string

// TabList rebuilds the tab list the snapshot was taken from, keeping the
// saved tab IDs and order.
func (s *SessionState) TabList() *TabList {
	tabs := NewTabList()
	if s == nil {
		return tabs
	}

	for i, snap := range s.Tabs {
		tabs.Add(&Tab{
			ID:       snap.ID,
			Name:     snap.Name,
			URI:      snap.URI,
			IsPinned: snap.IsPinned,
		})
		if i == s.ActiveTabIndex {
			tabs.ActiveTabID = snap.ID
		}
	}
	return tabs
}

// Validate checks the snapshot can be persisted.
func (s *SessionState) Validate() error {
	if s == nil || s.SessionID == "" {
		return ErrInvalidSessionState
	}
	if s.ActiveTabIndex < 0 || (len(s.Tabs) > 0 && s.ActiveTabIndex >= len(s.Tabs)) {
		return ErrInvalidSessionState
	}
	return nil
}

// URIs returns the tab URLs in tab order.
func (s *SessionState) URIs() []string {
	uris := make([]string, 0, len(s.Tabs))
	for _, tab := range s.Tabs {
		uris = append(uris, tab.URI)
	}
	return uris
}

// SessionInfo provides summary information for session listings.
type SessionInfo struct {
	State     *SessionState
	TabCount  int
	UpdatedAt time.Time
}
