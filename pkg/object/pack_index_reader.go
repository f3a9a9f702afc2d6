package object

import (
	"fmt"
	"os"
)

// withPackIndex maps the idx file at path read-only, decodes it and hands the
// index to fn. The mapping is released before withPackIndex returns, so fn
// must not retain the index.
func withPackIndex(path string, fn func(*PackIndex) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open pack index: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat pack index: %w", err)
	}

	data, release, err := mapFile(f, info.Size())
	if err != nil {
		return fmt.Errorf("map pack index %s: %w", path, err)
	}
	defer release()

	idx, err := DecodePackIndex(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return fn(idx)
}
