package util

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// GatherAllPaths walks root and returns every file path ending in suffix,
// relative to root.
func GatherAllPaths(root string, suffix string) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(s, suffix) {
			rel, err := filepath.Rel(root, s)
			if err != nil {
				return err
			}
			res = append(res, rel)
		}
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", root, err)
	}
	return res, nil
}

func GetKeys[A comparable, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	slices.Sort(keys)
	return keys
}

func CreateBinary(filename string, data any) error {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(data); err != nil {
		return fmt.Errorf("could not encode %s: %w", filename, err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write failed for %s: %w", filename, err)
	}
	return nil
}

func ReadBinary[A any](path string) (A, error) {
	var data A
	f, err := os.Open(path)
	if err != nil {
		return data, err
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&data); err != nil {
		return data, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return data, nil
}

func Chunk[A any](items []A, size int) [][]A {
	var res [][]A
	for size < len(items) {
		items, res = items[size:], append(res, items[:size])
	}
	if len(items) > 0 {
		res = append(res, items)
	}
	return res
}

func Max[A constraints.Ordered](nums []A) (A, bool) {
	var best A
	if len(nums) == 0 {
		return best, false
	}
	best = nums[0]
	for _, v := range nums[1:] {
		if v > best {
			best = v
		}
	}
	return best, true
}
