package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/klauspost/compress/zlib"
)

// writeLooseBlob stores content as a zlib-compressed loose blob under
// objectsDir and returns its id.
func writeLooseBlob(t *testing.T, objectsDir string, content []byte) Hash {
	t.Helper()
	id := plumbing.ComputeHash(plumbing.BlobObject, content)
	h := Hash(id.String())

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	fmt.Fprintf(zw, "blob %d\x00", len(content))
	zw.Write(content)
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	writeLooseFile(t, objectsDir, h, buf.Bytes())
	return h
}

// writeLooseFile places data at the loose path for h without checking that
// the content hashes to h.
func writeLooseFile(t *testing.T, objectsDir string, h Hash, data []byte) {
	t.Helper()
	dir := filepath.Join(objectsDir, string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, string(h[2:])), data, 0o444); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// writePackIndexFile writes raw idx bytes as objects/pack/<name>.idx.
func writePackIndexFile(t *testing.T, objectsDir, name string, data []byte) string {
	t.Helper()
	dir := filepath.Join(objectsDir, "pack")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", dir, err)
	}
	path := filepath.Join(dir, name+".idx")
	if err := os.WriteFile(path, data, 0o444); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func hashesToRaw(t *testing.T, hashes ...Hash) [][]byte {
	t.Helper()
	out := make([][]byte, 0, len(hashes))
	for _, h := range hashes {
		raw, err := hex.DecodeString(string(h))
		if err != nil {
			t.Fatalf("DecodeString(%s): %v", h, err)
		}
		out = append(out, raw)
	}
	return out
}

func padHash(prefix string) Hash {
	for len(prefix) < HashHexSize {
		prefix += "0"
	}
	return Hash(prefix)
}
