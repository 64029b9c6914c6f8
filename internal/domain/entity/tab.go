package entity

import "time"

// TabID uniquely identifies a tab.
type TabID string

// Tab is an open tab showing a single page.
type Tab struct {
	ID        TabID
	Name      string // page title
	URI       string
	Position  int // 0-indexed
	IsPinned  bool
	CreatedAt time.Time
}

// NewTab creates a new tab showing uri.
func NewTab(tabID TabID, uri string) *Tab {
	return &Tab{
		ID:        tabID,
		URI:       uri,
		CreatedAt: time.Now(),
	}
}

// TabList is an ordered set of tabs. It is the candidate list a similar
// tab lookup scans, in tab order.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs: make([]*Tab, 0),
	}
}

// Add appends a tab. The first tab added becomes the active one.
func (tl *TabList) Add(tab *Tab) {
	tab.Position = len(tl.Tabs)
	tl.Tabs = append(tl.Tabs, tab)
	if tl.ActiveTabID == "" {
		tl.ActiveTabID = tab.ID
	}
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	if tl == nil {
		return 0
	}
	return len(tl.Tabs)
}

// URIAt returns the URL of the tab at index i, or "" when out of range.
func (tl *TabList) URIAt(i int) string {
	if tl == nil || i < 0 || i >= len(tl.Tabs) || tl.Tabs[i] == nil {
		return ""
	}
	return tl.Tabs[i].URI
}
