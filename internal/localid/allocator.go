// Package localid hands out identifiers for entities created in the editor
// and recognizes them later, so that imported rows can be told apart from
// locally authored ones.
package localid

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// Prefixes prepended to a local ID to derive IDs for related rows.
const (
	PrefixCardUniqueInfo  = types.PrefixCardUniqueInfo
	PrefixPassiveSkillSet = types.PrefixPassiveSkillSet
	PrefixLeaderSkillSet  = types.PrefixLeaderSkillSet
	PrefixActiveSkillSet  = types.PrefixActiveSkillSet
	PrefixSpecialSet      = types.PrefixSpecialSet
	PrefixGrowthID        = types.PrefixGrowthID
	PrefixGrowthTypeID    = types.PrefixGrowthTypeID
)

// Prefixes lists every known prefix.
var Prefixes = []string{
	PrefixCardUniqueInfo,
	PrefixPassiveSkillSet,
	PrefixLeaderSkillSet,
	PrefixActiveSkillSet,
	PrefixSpecialSet,
	PrefixGrowthID,
	PrefixGrowthTypeID,
}

// Range is an inclusive range of local IDs.
type Range struct {
	Start int64
	End   int64
}

// DefaultRange is the reserved local range.
var DefaultRange = Range{Start: types.DefaultLocalIDStart, End: types.DefaultLocalIDEnd}

// Contains reports whether n is in the range.
func (r Range) Contains(n int64) bool {
	return n >= r.Start && n <= r.End
}

// Allocator issues increasing IDs starting at its range's Start. Passing the
// End does not fail: IDs keep increasing and a warning is logged.
type Allocator struct {
	mu   sync.Mutex
	rng  Range
	next int64
	log  *zap.Logger
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithRange overrides DefaultRange.
func WithRange(r Range) Option {
	return func(a *Allocator) { a.rng = r }
}

// WithLogger sets the logger used for overflow warnings.
func WithLogger(l *zap.Logger) Option {
	return func(a *Allocator) {
		if l != nil {
			a.log = l
		}
	}
}

// New returns an allocator positioned at the start of its range.
func New(opts ...Option) *Allocator {
	a := &Allocator{rng: DefaultRange, log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	a.next = a.rng.Start
	return a
}

// Next returns a fresh ID.
func (a *Allocator) Next() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	if id > a.rng.End {
		a.log.Warn("local ID counter exceeded reserved range",
			zap.Int64("id", id), zap.Int64("end", a.rng.End))
	}
	return strconv.FormatInt(id, 10)
}

// NextPrefixed returns prefix followed by a fresh ID.
func (a *Allocator) NextPrefixed(prefix string) string {
	return prefix + a.Next()
}

// Reset moves the counter back to the start of the range.
func (a *Allocator) Reset() {
	a.mu.Lock()
	a.next = a.rng.Start
	a.mu.Unlock()
}

// Range returns the allocator's range.
func (a *Allocator) Range() Range {
	return a.rng
}

// IsLocal reports whether id was generated in this allocator's range, either
// directly or behind one of Prefixes.
func (a *Allocator) IsLocal(id string) bool {
	return isLocal(a.rng, id)
}

// IsLocallyGenerated is IsLocal over DefaultRange.
func IsLocallyGenerated(id string) bool {
	return isLocal(DefaultRange, id)
}

func isLocal(r Range, id string) bool {
	if n, ok := parse(id); ok && r.Contains(n) {
		return true
	}
	for _, p := range Prefixes {
		suffix, found := strings.CutPrefix(id, p)
		if !found || suffix == "" {
			continue
		}
		if n, ok := parse(suffix); ok && r.Contains(n) {
			return true
		}
	}
	return false
}

func parse(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}
