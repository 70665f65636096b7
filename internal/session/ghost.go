package session

import (
	"fmt"

	"github.com/google/uuid"
)

// Ghost is the optional diagnostic memory-arena checker (spec §3, §9): it
// tags every live G registered with the session with a UUID token and
// asserts the tag set is empty after DeleteAll, standing in for the
// original's raw-pointer leak detector now that nodes are arena indices
// rather than addresses (spec §9 DESIGN NOTE). Grounded on
// original_source/.../ghost.rs; tokens come from github.com/google/uuid
// rather than reused pointers, since an arena has no addresses to key by.
type Ghost struct {
	live map[uuid.UUID]string
}

// NewGhost returns an enabled ghost pool.
func NewGhost() *Ghost {
	return &Ghost{live: make(map[uuid.UUID]string)}
}

// Track registers a newly bound graph under label (its variable name) and
// returns the token to release later.
func (gh *Ghost) Track(label string) uuid.UUID {
	if gh == nil {
		return uuid.Nil
	}
	token := uuid.New()
	gh.live[token] = label
	return token
}

// Release removes a token, called whenever its graph is consumed or torn
// down.
func (gh *Ghost) Release(token uuid.UUID) {
	if gh == nil {
		return
	}
	delete(gh.live, token)
}

// AssertEmpty reports every allocation still tracked after a DeleteAll
// pass — a nonempty result means a graph was dropped without going
// through Consume or DeleteAll, a leak (spec §5: "the diagnostic pool, if
// enabled, asserts empty afterwards").
func (gh *Ghost) AssertEmpty() error {
	if gh == nil || len(gh.live) == 0 {
		return nil
	}
	labels := make([]string, 0, len(gh.live))
	for _, label := range gh.live {
		labels = append(labels, label)
	}
	return fmt.Errorf("session: ghost pool found %d leaked graph(s): %v", len(labels), labels)
}
