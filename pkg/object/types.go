package object

// Hash is a 40-character lowercase hex-encoded SHA-1 object id.
type Hash string

const (
	// HashSize is the raw length of an object id in bytes.
	HashSize = 20
	// HashHexSize is the hex-encoded length of an object id.
	HashHexSize = HashSize * 2
	// MinAbbrev is the shortest prefix ever reported for an object id.
	MinAbbrev = 4

	// looseDirLen is the number of hex digits consumed by the loose fan-out
	// directory name.
	looseDirLen = 2
)

// String returns the hex form of h.
func (h Hash) String() string { return string(h) }

// Short returns the first n hex digits of h, clamped to its length.
func (h Hash) Short(n int) string {
	if n < 0 {
		n = 0
	}
	if n > len(h) {
		n = len(h)
	}
	return string(h[:n])
}
