// internal/store/store.go
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FileStore resolves register values from per-address response files.
//
// File naming: the decimal register address, e.g. <dir>/2096.
// File format: one register value per line as an 0x-prefixed hex
// literal. Lines without the literal "0x" prefix are comments or noise
// and are skipped without complaint.
//
// The store keeps no state. Every lookup re-reads the file, so response
// files may be edited while the emulator runs and the next request
// picks the change up.
type FileStore struct {
	Dir string
}

// New returns a store rooted at dir.
func New(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Lookup resolves count register values for address.
//
// The file is scanned and validated up front: a malformed value line
// poisons the whole file even when enough earlier values exist.
// Trailing extra values are ignored.
func (s *FileStore) Lookup(address, count uint16) ([]uint16, error) {
	path := filepath.Join(s.Dir, strconv.FormatUint(uint64(address), 10))

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w for address %d", ErrNotFound, address)
		}
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer f.Close()

	var values []uint16

	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "0x") {
			continue
		}
		v, err := strconv.ParseUint(text[2:], 16, 16)
		if err != nil {
			return nil, &MalformedLineError{Path: path, Line: line, Text: text, Err: err}
		}
		values = append(values, uint16(v))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	if len(values) < int(count) {
		return nil, &InsufficientError{
			Address:   address,
			Requested: count,
			Available: len(values),
		}
	}
	return values[:count], nil
}

// Addresses returns the register addresses that currently have a
// response file, sorted ascending. Names that are not decimal 16-bit
// addresses are ignored.
func (s *FileStore) Addresses() ([]uint16, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", s.Dir, err)
	}

	var addrs []uint16
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, err := strconv.ParseUint(e.Name(), 10, 16)
		if err != nil {
			continue
		}
		addrs = append(addrs, uint16(n))
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs, nil
}
