package object

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math/rand"
	"sort"
	"testing"
)

// encodeTestPackIndex writes an idx v2 file listing ids. Offsets, CRCs and
// trailing checksums are zero.
func encodeTestPackIndex(ids [][]byte) []byte {
	sorted := make([][]byte, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i], sorted[j]) < 0 })

	var counts [256]uint32
	for _, id := range sorted {
		counts[id[0]]++
	}

	var buf bytes.Buffer
	buf.Write(packIndexMagic[:])
	_ = binary.Write(&buf, binary.BigEndian, uint32(packIndexVersion))
	var total uint32
	for i := 0; i < 256; i++ {
		total += counts[i]
		_ = binary.Write(&buf, binary.BigEndian, total)
	}
	for _, id := range sorted {
		buf.Write(id)
	}
	buf.Write(make([]byte, len(sorted)*4)) // crc32
	buf.Write(make([]byte, len(sorted)*4)) // offsets
	buf.Write(make([]byte, 2*HashSize))    // pack + index checksums
	return buf.Bytes()
}

func hexIDs(t *testing.T, prefixes ...string) [][]byte {
	t.Helper()
	out := make([][]byte, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, rawHash(t, p))
	}
	return out
}

func TestDecodePackIndexRequiresMagicAndVersion(t *testing.T) {
	valid := encodeTestPackIndex(hexIDs(t, "10", "20"))

	wrongVersion := append([]byte(nil), valid...)
	binary.BigEndian.PutUint32(wrongVersion[4:8], 3)
	if _, err := DecodePackIndex(wrongVersion); !errors.Is(err, ErrBadVersion) {
		t.Fatalf("version 3 with good magic: err = %v, want ErrBadVersion", err)
	}

	wrongMagic := append([]byte(nil), valid...)
	copy(wrongMagic[:4], "JUNK")
	if _, err := DecodePackIndex(wrongMagic); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("bad magic with version 2: err = %v, want ErrBadMagic", err)
	}

	bothWrong := append([]byte(nil), wrongMagic...)
	binary.BigEndian.PutUint32(bothWrong[4:8], 1)
	if _, err := DecodePackIndex(bothWrong); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("bad magic and version: err = %v, want ErrBadMagic", err)
	}

	if _, err := DecodePackIndex(valid); err != nil {
		t.Fatalf("DecodePackIndex(valid): %v", err)
	}
}

func TestDecodePackIndexBoundsChecks(t *testing.T) {
	valid := encodeTestPackIndex(hexIDs(t, "10", "11", "12"))

	if _, err := DecodePackIndex(valid[:6]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short header: err = %v, want ErrTruncated", err)
	}
	if _, err := DecodePackIndex(valid[:packIndexHeaderSize+100]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short fanout: err = %v, want ErrTruncated", err)
	}
	namesEnd := packIndexHeaderSize + packIndexFanoutSize + 3*HashSize
	if _, err := DecodePackIndex(valid[:namesEnd-1]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short name table: err = %v, want ErrTruncated", err)
	}
	if _, err := DecodePackIndex(valid[:namesEnd]); err != nil {
		t.Fatalf("exact name table: %v", err)
	}

	// Fanout claims more objects than the file holds.
	inflated := append([]byte(nil), valid[:namesEnd]...)
	for i := 0x10; i < 256; i++ {
		binary.BigEndian.PutUint32(inflated[packIndexHeaderSize+i*4:], 1000)
	}
	if _, err := DecodePackIndex(inflated); !errors.Is(err, ErrTruncated) {
		t.Fatalf("inflated fanout: err = %v, want ErrTruncated", err)
	}

	decreasing := append([]byte(nil), valid...)
	binary.BigEndian.PutUint32(decreasing[packIndexHeaderSize+0x20*4:], 1)
	if _, err := DecodePackIndex(decreasing); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("decreasing fanout: err = %v, want ErrCorrupt", err)
	}
}

func TestPackIndexContains(t *testing.T) {
	ids := hexIDs(t, "02", "10", "10ff", "20")
	idx, err := DecodePackIndex(encodeTestPackIndex(ids))
	if err != nil {
		t.Fatalf("DecodePackIndex: %v", err)
	}
	if idx.Len() != 4 {
		t.Fatalf("Len = %d, want 4", idx.Len())
	}
	for _, id := range ids {
		if !idx.Contains(Hash(hex.EncodeToString(id))) {
			t.Fatalf("Contains(%x) = false", id)
		}
	}
	if idx.Contains(Hash(hex.EncodeToString(rawHash(t, "ff")))) {
		t.Fatal("Contains(ff..) = true for missing id")
	}
}

func TestPackIndexRequiredPrefix(t *testing.T) {
	idx, err := DecodePackIndex(encodeTestPackIndex(hexIDs(t, "ab10", "ab1234", "ab20", "cd")))
	if err != nil {
		t.Fatalf("DecodePackIndex: %v", err)
	}

	cases := []struct {
		target string
		want   int
	}{
		{"ab12", 5},   // absent; neighbours ab10 (3) and ab1234 (4)
		{"ab1234", 4}, // present; neighbours ab10 (3) and ab20 (2)
		{"ab15", 4},   // absent; between ab1234 (3) and ab20 (2)
		{"ab30", 3},   // absent; past the end of the bucket
		{"cd", 0},     // only itself in the bucket
		{"ef", 0},     // empty bucket
	}
	for _, tc := range cases {
		h := Hash(hex.EncodeToString(rawHash(t, tc.target)))
		if got := idx.RequiredPrefix(h); got != tc.want {
			t.Fatalf("RequiredPrefix(%s) = %d, want %d", tc.target, got, tc.want)
		}
	}
}

// bruteRequiredPrefix is the reference model: compare against every other
// id sharing the leading byte.
func bruteRequiredPrefix(ids [][]byte, target []byte) int {
	shared := -1
	for _, id := range ids {
		if bytes.Equal(id, target) || id[0] != target[0] {
			continue
		}
		shared = max(shared, CommonHexPrefix(id, target))
	}
	if shared < 0 {
		return 0
	}
	return shared + 1
}

func TestPackIndexRequiredPrefixMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		// Bucket sizes range over 0, 1 and many by drawing leading bytes from
		// a small alphabet with a random population.
		n := rng.Intn(40)
		seen := map[string]bool{}
		var ids [][]byte
		for len(ids) < n {
			id := randomID(rng)
			if seen[string(id)] {
				continue
			}
			seen[string(id)] = true
			ids = append(ids, id)
		}
		idx, err := DecodePackIndex(encodeTestPackIndex(ids))
		if err != nil {
			t.Fatalf("trial %d: DecodePackIndex: %v", trial, err)
		}

		targets := append([][]byte(nil), ids...)
		for i := 0; i < 10; i++ {
			targets = append(targets, randomID(rng))
		}
		for _, target := range targets {
			h := Hash(hex.EncodeToString(target))
			want := bruteRequiredPrefix(ids, target)
			if got := idx.RequiredPrefix(h); got != want {
				t.Fatalf("trial %d: RequiredPrefix(%s) = %d, want %d", trial, h, got, want)
			}
		}
	}
}

func randomID(rng *rand.Rand) []byte {
	id := make([]byte, HashSize)
	rng.Read(id)
	id[0] = byte(rng.Intn(4))
	id[1] = byte(rng.Intn(3))<<4 | byte(rng.Intn(2))
	if rng.Intn(2) == 0 {
		id[2] = 0x5a
	}
	return id
}
