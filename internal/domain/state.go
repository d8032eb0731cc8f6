package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// View is one of the four top-level screens.
type View string

const (
	ViewHome      View = "home"
	ViewScanner   View = "scanner"
	ViewBookmarks View = "bookmarks"
	ViewHistory   View = "history"
)

var (
	ErrUnknownStatue = errors.New("unknown statue")
	ErrUnknownView   = errors.New("unknown view")
	ErrNotInHistory  = errors.New("statue not in history")
)

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewHome, ViewScanner, ViewBookmarks, ViewHistory:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// Changes is a bit set of the persisted keys touched by a transition.
type Changes uint8

const (
	ChangedDarkMode Changes = 1 << iota
	ChangedBookmarks
	ChangedHistory

	NoChanges Changes = 0
)

// Has reports whether c contains every bit of other.
func (c Changes) Has(other Changes) bool { return c&other == other && other != 0 }

// HistoryEntry is one scan. Statue is a full copy taken at scan time.
type HistoryEntry struct {
	Statue    Statue `json:"statue"`
	Timestamp int64  `json:"timestamp"` // epoch ms
}

// Lookup resolves a normalized statue id.
type Lookup interface {
	Get(id string) (*Statue, bool)
}

// ClientState is the complete per-visitor state.
//
// DarkMode, Bookmarks and History are persisted; the rest lives only as
// long as the session does.
type ClientState struct {
	View             View   `json:"view"`
	DrawerOpen       bool   `json:"drawerOpen"`
	ChatOpen         bool   `json:"chatOpen"`
	SelectedStatueID string `json:"selectedStatueId,omitempty"`

	DarkMode  bool           `json:"darkMode"`
	Bookmarks []string       `json:"bookmarks"`
	History   []HistoryEntry `json:"history"`

	// HistoryLimit caps History when > 0. Zero keeps every entry.
	HistoryLimit int `json:"-"`
}

// NewClientState returns the first-run state.
func NewClientState() *ClientState {
	return &ClientState{
		View:      ViewHome,
		Bookmarks: []string{},
		History:   []HistoryEntry{},
	}
}

// NormalizeID lowercases and trims a scanned code.
func NormalizeID(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Scan selects the statue identified by code and records it in history.
// An unknown code leaves the state untouched.
func (s *ClientState) Scan(code string, catalog Lookup, now time.Time) (Changes, error) {
	id := NormalizeID(code)
	statue, ok := catalog.Get(id)
	if !ok {
		return NoChanges, fmt.Errorf("%w: %q", ErrUnknownStatue, code)
	}

	s.selectStatue(statue.ID)

	history := make([]HistoryEntry, 0, len(s.History)+1)
	history = append(history, HistoryEntry{Statue: *statue, Timestamp: now.UnixMilli()})
	for _, e := range s.History {
		if e.Statue.ID != statue.ID {
			history = append(history, e)
		}
	}
	if s.HistoryLimit > 0 && len(history) > s.HistoryLimit {
		history = history[:s.HistoryLimit]
	}
	s.History = history

	return ChangedHistory, nil
}

// ToggleBookmark adds id when absent and removes it when present.
func (s *ClientState) ToggleBookmark(id string) Changes {
	if i := slices.Index(s.Bookmarks, id); i >= 0 {
		s.Bookmarks = slices.Delete(slices.Clone(s.Bookmarks), i, i+1)
	} else {
		s.Bookmarks = append(slices.Clone(s.Bookmarks), id)
	}
	return ChangedBookmarks
}

// IsBookmarked reports whether id is in the bookmark set.
func (s *ClientState) IsBookmarked(id string) bool {
	return slices.Contains(s.Bookmarks, id)
}

// SelectFromHistory re-opens a statue already in history. History order
// is not changed.
func (s *ClientState) SelectFromHistory(id string) error {
	id = NormalizeID(id)
	for _, e := range s.History {
		if e.Statue.ID == id {
			s.selectStatue(id)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotInHistory, id)
}

// SelectBookmarked opens a bookmarked statue from the bookmark list.
func (s *ClientState) SelectBookmarked(id string, catalog Lookup) error {
	statue, ok := catalog.Get(NormalizeID(id))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatue, id)
	}
	s.selectStatue(statue.ID)
	return nil
}

// ToggleDarkMode flips the theme flag.
func (s *ClientState) ToggleDarkMode() Changes {
	s.DarkMode = !s.DarkMode
	return ChangedDarkMode
}

// Theme mirrors DarkMode as the document-level theme class.
func (s *ClientState) Theme() string {
	if s.DarkMode {
		return "dark"
	}
	return "light"
}

// SetView switches screen. The selection is kept.
func (s *ClientState) SetView(v View) {
	s.View = v
	if v != ViewHome {
		s.CloseOverlays()
	}
}

// OpenDrawer opens the detail drawer and closes the chat.
func (s *ClientState) OpenDrawer() {
	s.DrawerOpen = true
	s.ChatOpen = false
}

// OpenChat opens the chat and closes the drawer.
func (s *ClientState) OpenChat() {
	s.ChatOpen = true
	s.DrawerOpen = false
}

// CloseOverlays closes both drawer and chat.
func (s *ClientState) CloseOverlays() {
	s.DrawerOpen = false
	s.ChatOpen = false
}

func (s *ClientState) selectStatue(id string) {
	s.SelectedStatueID = id
	s.View = ViewHome
	s.CloseOverlays()
}

// Clone returns a deep copy safe to hand out of a locked section.
func (s *ClientState) Clone() *ClientState {
	c := *s
	c.Bookmarks = slices.Clone(s.Bookmarks)
	c.History = slices.Clone(s.History)
	if c.Bookmarks == nil {
		c.Bookmarks = []string{}
	}
	if c.History == nil {
		c.History = []HistoryEntry{}
	}
	return &c
}
