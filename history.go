package router

import (
	"net/url"
	"strings"
)

// History is the browser-history collaborator: push/replace with no
// reload plus a current-location reader. The router mutates history only
// from NavigateTo and from internal redirect hops (which always replace).
type History interface {
	// Push appends a new entry and makes it current.
	Push(path string)

	// Replace overwrites the current entry.
	Replace(path string)

	// Location returns the current entry.
	Location() string
}

// Mode selects how a location string maps to a navigable path.
type Mode int

const (
	// ModePath navigates on the URL path ("/user/5").
	ModePath Mode = iota

	// ModeHash navigates on the URL fragment ("#/user/5").
	ModeHash
)

// LocationPath extracts the navigable path from a location string (a full
// URL or a bare path) for the given mode. In hash mode the fragment is
// the path; an empty or missing fragment resolves to "/".
func LocationPath(location string, mode Mode) string {
	if mode == ModeHash {
		_, frag, ok := strings.Cut(location, "#")
		if !ok || frag == "" {
			return "/"
		}
		if !strings.HasPrefix(frag, "/") {
			frag = "/" + frag
		}
		return frag
	}

	u, err := url.Parse(location)
	if err != nil || u.Path == "" {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// MemoryHistory is an in-process History with back/forward traversal.
// It stands in for the browser history stack in tests, CLIs, and the
// websocket bridge.
type MemoryHistory struct {
	stack []string
	index int
}

// NewMemoryHistory creates a history positioned at "/".
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{stack: []string{"/"}}
}

// Push appends a new entry, discarding any forward entries.
func (h *MemoryHistory) Push(path string) {
	h.stack = append(h.stack[:h.index+1], path)
	h.index = len(h.stack) - 1
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(path string) {
	h.stack[h.index] = path
}

// Location returns the current entry.
func (h *MemoryHistory) Location() string {
	return h.stack[h.index]
}

// Back moves one entry back if possible and returns the current entry.
func (h *MemoryHistory) Back() string {
	if h.index > 0 {
		h.index--
	}
	return h.stack[h.index]
}

// Forward moves one entry forward if possible and returns the current
// entry.
func (h *MemoryHistory) Forward() string {
	if h.index < len(h.stack)-1 {
		h.index++
	}
	return h.stack[h.index]
}

// Len returns the number of entries on the stack.
func (h *MemoryHistory) Len() int {
	return len(h.stack)
}
