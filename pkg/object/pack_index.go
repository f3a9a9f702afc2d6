package object

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

const (
	packIndexVersion    = 2
	packIndexHeaderSize = 8
	packIndexFanoutSize = 256 * 4
)

var packIndexMagic = [4]byte{0xff, 't', 'O', 'c'}

var (
	// ErrBadMagic is returned for idx data that does not start with the v2 magic.
	ErrBadMagic = errors.New("pack index: bad magic")
	// ErrBadVersion is returned for idx data whose version is not 2.
	ErrBadVersion = errors.New("pack index: unsupported version")
	// ErrTruncated is returned when the data is shorter than its tables claim.
	ErrTruncated = errors.New("pack index: truncated")
	// ErrCorrupt is returned for a fanout table that is not cumulative.
	ErrCorrupt = errors.New("pack index: corrupt fanout")
)

// PackIndex is a decoded view over the name table of an idx v2 file. It
// aliases the buffer it was decoded from and must not outlive it.
type PackIndex struct {
	fanout [256]uint32
	names  []byte
}

// DecodePackIndex validates the header, fanout table and name table bounds
// of an idx v2 buffer. Both magic and version must match; a file failing
// either check is rejected as a whole.
func DecodePackIndex(data []byte) (*PackIndex, error) {
	if len(data) < packIndexHeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, packIndexHeaderSize, len(data))
	}
	if !bytes.Equal(data[:4], packIndexMagic[:]) {
		return nil, fmt.Errorf("%w %x", ErrBadMagic, data[:4])
	}
	if version := binary.BigEndian.Uint32(data[4:8]); version != packIndexVersion {
		return nil, fmt.Errorf("%w %d", ErrBadVersion, version)
	}
	if len(data) < packIndexHeaderSize+packIndexFanoutSize {
		return nil, fmt.Errorf("%w: fanout table needs %d bytes, have %d", ErrTruncated, packIndexHeaderSize+packIndexFanoutSize, len(data))
	}

	idx := &PackIndex{}
	cursor := packIndexHeaderSize
	var prev uint32
	for i := 0; i < 256; i++ {
		v := binary.BigEndian.Uint32(data[cursor:])
		if v < prev {
			return nil, fmt.Errorf("%w: entry %d (%d) < entry %d (%d)", ErrCorrupt, i, v, i-1, prev)
		}
		idx.fanout[i] = v
		prev = v
		cursor += 4
	}

	namesLen := uint64(idx.fanout[255]) * HashSize
	if uint64(len(data)-cursor) < namesLen {
		return nil, fmt.Errorf("%w: name table needs %d bytes, have %d", ErrTruncated, namesLen, len(data)-cursor)
	}
	idx.names = data[cursor : cursor+int(namesLen)]
	return idx, nil
}

// Len returns the number of objects listed in the index.
func (idx *PackIndex) Len() int {
	return int(idx.fanout[255])
}

// name returns the raw id at position i of the sorted name table.
func (idx *PackIndex) name(i int) []byte {
	return idx.names[i*HashSize : (i+1)*HashSize]
}

// bucket returns the [start, end) range of ids whose leading byte is b.
func (idx *PackIndex) bucket(b byte) (int, int) {
	start := uint32(0)
	if b > 0 {
		start = idx.fanout[b-1]
	}
	return int(start), int(idx.fanout[b])
}

// search returns the insertion point of raw within its fanout bucket,
// relative to the bucket start, and whether the id is present there.
func (idx *PackIndex) search(raw []byte) (start, count, pos int, found bool) {
	start, end := idx.bucket(raw[0])
	count = end - start
	pos = sort.Search(count, func(i int) bool {
		return bytes.Compare(idx.name(start+i), raw) >= 0
	})
	found = pos < count && bytes.Equal(idx.name(start+pos), raw)
	return start, count, pos, found
}

// Contains reports whether the index lists the object h.
func (idx *PackIndex) Contains(h Hash) bool {
	raw, err := hashHexToBytes(h)
	if err != nil {
		return false
	}
	_, _, _, found := idx.search(raw)
	return found
}

// RequiredPrefix returns the number of hex digits needed to tell h apart from
// every other id in this index, or 0 when no other id shares h's leading
// byte. The entry for h itself is never compared against.
func (idx *PackIndex) RequiredPrefix(h Hash) int {
	raw, err := hashHexToBytes(h)
	if err != nil {
		return 0
	}
	start, count, pos, found := idx.search(raw)
	if count == 0 {
		return 0
	}

	left, right := pos-1, pos
	if found {
		right = pos + 1
	}

	shared := -1
	if left >= 0 {
		shared = max(shared, CommonHexPrefix(idx.name(start+left), raw))
	}
	if right < count {
		shared = max(shared, CommonHexPrefix(idx.name(start+right), raw))
	}
	if shared < 0 {
		return 0
	}
	return shared + 1
}
