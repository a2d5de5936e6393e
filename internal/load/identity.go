package load

// IdentityMap records the surrogate key generated for each natural source
// key during one load phase. It is append-only and scoped to a single
// pipeline run; nothing is persisted across runs.
type IdentityMap struct {
	m map[string]int64
}

// NewIdentityMap returns an empty IdentityMap.
func NewIdentityMap() *IdentityMap {
	return &IdentityMap{m: make(map[string]int64)}
}

// Put records the surrogate key for a natural key.
func (im *IdentityMap) Put(natural string, surrogate int64) {
	im.m[natural] = surrogate
}

// Resolve returns the surrogate key for a natural key, and whether one was
// recorded.
func (im *IdentityMap) Resolve(natural string) (int64, bool) {
	id, ok := im.m[natural]
	return id, ok
}

// Len returns the number of recorded mappings.
func (im *IdentityMap) Len() int { return len(im.m) }
