package token

import "sync"

// TTUser is the first id handed out to a user-registered token type
// (spec.md §6.6).
const TTUser uint32 = 64

// UnambWriter renders a user token's payload into the §6.4 `{ user ... }`
// form; Pprinter renders it for human-facing diagnostics. Either may be
// nil.
type UnambWriter func(payload interface{}) string
type Pprinter func(payload interface{}) string

type typeEntry struct {
	name        string
	id          uint32
	unambWriter UnambWriter
	pprint      Pprinter
}

// registry is the process-wide, user-extensible token-type table spec.md
// §3.2/§6.6 describes. It is a package-level singleton guarded by a mutex
// rather than threaded explicitly through builders — spec.md §9's design
// note on global state recommends exactly this as "simpler and matches the
// C semantics", and §5's concurrency model puts the burden of serializing
// registrations on the host when multiple threads register dynamically.
var registry = struct {
	mu      sync.RWMutex
	byName  map[string]*typeEntry
	byID    map[uint32]*typeEntry
	nextID  uint32
}{
	byName: make(map[string]*typeEntry),
	byID:   make(map[uint32]*typeEntry),
	nextID: TTUser,
}

// AllocateTokenType assigns a fresh id >= TTUser to name, or returns the
// existing id if name was already registered (monotonicity invariant,
// spec.md §8).
func AllocateTokenType(name string) uint32 {
	return AllocateTokenNew(name, nil, nil)
}

// AllocateTokenNew is AllocateTokenType plus optional formatting hooks.
// Re-registering an existing name returns its existing id; the hooks
// passed on a re-registration are ignored, matching "duplicate
// registration ... returns the existing id" (spec.md §3.2).
func AllocateTokenNew(name string, unambWriter UnambWriter, pprint Pprinter) uint32 {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if e, ok := registry.byName[name]; ok {
		return e.id
	}
	e := &typeEntry{
		name:        name,
		id:          registry.nextID,
		unambWriter: unambWriter,
		pprint:      pprint,
	}
	registry.nextID++
	registry.byName[name] = e
	registry.byID[e.id] = e
	tracer().Debugf("token: registered user type %q as #%d", name, e.id)
	return e.id
}

// GetTokenTypeNumber returns name's id and true, or (0, false) if name was
// never registered.
func GetTokenTypeNumber(name string) (uint32, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	e, ok := registry.byName[name]
	if !ok {
		return 0, false
	}
	return e.id, true
}

// GetTokenTypeName returns id's registered name, or "" if id is unknown.
func GetTokenTypeName(id uint32) (string, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	e, ok := registry.byID[id]
	if !ok {
		return "", false
	}
	return e.name, true
}

// WriteUnamb renders a user token's payload via its registered writer, or
// a generic fallback if none was supplied. Used by package unamb to
// implement the `{ user ... }` form of spec.md §6.4.
func WriteUnamb(typeID uint32, payload interface{}) string {
	registry.mu.RLock()
	e, ok := registry.byID[typeID]
	registry.mu.RUnlock()
	if !ok || e.unambWriter == nil {
		return "?"
	}
	return e.unambWriter(payload)
}

// Pprint renders a user token's payload via its registered pretty-printer,
// falling back to the type's registered name (or "#id" for an unknown id)
// when none is registered.
func Pprint(typeID uint32, payload interface{}) string {
	registry.mu.RLock()
	e, ok := registry.byID[typeID]
	registry.mu.RUnlock()
	if !ok || e.pprint == nil {
		return nameFor(typeID)
	}
	return e.pprint(payload)
}
