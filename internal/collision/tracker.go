// Package collision detects name hash collisions among registered codecs.
package collision

import (
	"fmt"

	"github.com/arloliu/intpack/errs"
)

// Tracker maps name hashes back to names and rejects a hash that is already
// taken by another name.
type Tracker struct {
	names map[uint64]string // hash -> name
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
	}
}

// Track records name under id.
//
// Returns an error wrapping errs.ErrInvalidArgument if:
//   - name is empty
//   - name was already tracked
//   - id is already taken by a different name
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrInvalidArgument)
	}

	if existing, ok := t.names[id]; ok {
		if existing == name {
			return fmt.Errorf("%w: %q tracked twice", errs.ErrInvalidArgument, name)
		}

		return fmt.Errorf("%w: %q and %q hash to %#016x", errs.ErrInvalidArgument, existing, name, id)
	}

	t.names[id] = name

	return nil
}

// Lookup returns the name tracked under id.
func (t *Tracker) Lookup(id uint64) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}
