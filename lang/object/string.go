package object

// String is an immutable byte sequence with a cached FNV-1a hash. Every
// String in a running program is interned (see gc.Collector.Intern), so two
// Strings with equal bytes are always the same *String: identity equality
// suffices for ==, and the intern table can be used as a weak set without
// ever needing to compare byte slices at GC time.
type String struct {
	Header
	Bytes []byte
	Hash  uint32
}

var _ Obj = (*String)(nil)

func (s *String) Kind() Kind     { return OString }
func (s *String) String() string { return string(s.Bytes) }

// HashFNV1a computes the 32-bit FNV-1a hash of b, used both to cache
// String.Hash at construction and to look up a candidate in the intern
// table before allocating a new String.
func HashFNV1a(b []byte) uint32 {
	const (
		offsetBasis = 2166136261
		prime       = 16777619
	)
	h := uint32(offsetBasis)
	for _, c := range b {
		h ^= uint32(c)
		h *= prime
	}
	return h
}
