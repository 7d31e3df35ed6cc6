// internal/store/store_test.go
package store

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// helper: write a response file for addr into dir
func writeResponse(t *testing.T, dir string, addr uint16, content string) {
	t.Helper()
	path := filepath.Join(dir, strconv.Itoa(int(addr)))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func equal(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ---- tests ----

func TestLookup_TruncatesToCount(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 1000, "0x0A\n0x14\n0x1E\n0x28\n")

	got, err := New(dir).Lookup(1000, 2)
	if err != nil {
		t.Fatalf("Lookup err=%v", err)
	}
	if !equal(got, []uint16{10, 20}) {
		t.Fatalf("values=%v want [10 20]", got)
	}
}

func TestLookup_ExactCount(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 1000, "0x0A\n0x14\n0x1E\n0x28\n")

	got, err := New(dir).Lookup(1000, 4)
	if err != nil {
		t.Fatalf("Lookup err=%v", err)
	}
	if !equal(got, []uint16{10, 20, 30, 40}) {
		t.Fatalf("values=%v want [10 20 30 40]", got)
	}
}

func TestLookup_Insufficient(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 2096, "0x01\n0x02\n")

	_, err := New(dir).Lookup(2096, 3)

	var ie *InsufficientError
	if !errors.As(err, &ie) {
		t.Fatalf("err=%v want InsufficientError", err)
	}
	if ie.Requested != 3 || ie.Available != 2 {
		t.Fatalf("requested=%d available=%d want 3/2", ie.Requested, ie.Available)
	}
}

func TestLookup_PrefixFilter(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 5, "0xAB\ncomment line\n\n0x10\n")

	got, err := New(dir).Lookup(5, 2)
	if err != nil {
		t.Fatalf("Lookup err=%v", err)
	}
	if !equal(got, []uint16{0xAB, 0x10}) {
		t.Fatalf("values=%v want [171 16]", got)
	}
}

func TestLookup_UppercasePrefixIsNoise(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 5, "0X2A\n0x2A\n")

	got, err := New(dir).Lookup(5, 1)
	if err != nil {
		t.Fatalf("Lookup err=%v", err)
	}
	if !equal(got, []uint16{0x2A}) {
		t.Fatalf("values=%v want [42]", got)
	}

	// Only the lowercase line counts.
	if _, err := New(dir).Lookup(5, 2); err == nil {
		t.Fatalf("expected insufficient error, got nil")
	}
}

func TestLookup_WhitespaceTrimmed(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 7, "  0x0A \t\n")

	got, err := New(dir).Lookup(7, 1)
	if err != nil {
		t.Fatalf("Lookup err=%v", err)
	}
	if !equal(got, []uint16{10}) {
		t.Fatalf("values=%v want [10]", got)
	}
}

func TestLookup_MalformedHex(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 9, "0x01\n0xZZ\n0x03\n")

	_, err := New(dir).Lookup(9, 1)

	var me *MalformedLineError
	if !errors.As(err, &me) {
		t.Fatalf("err=%v want MalformedLineError", err)
	}
	if me.Line != 2 || me.Text != "0xZZ" {
		t.Fatalf("line=%d text=%q want 2/0xZZ", me.Line, me.Text)
	}
}

func TestLookup_BarePrefixMalformed(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 9, "0x\n")

	var me *MalformedLineError
	if _, err := New(dir).Lookup(9, 0); !errors.As(err, &me) {
		t.Fatalf("err=%v want MalformedLineError", err)
	}
}

func TestLookup_OverflowMalformed(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 9, "0x10000\n")

	var me *MalformedLineError
	if _, err := New(dir).Lookup(9, 1); !errors.As(err, &me) {
		t.Fatalf("err=%v want MalformedLineError", err)
	}
}

func TestLookup_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := New(dir).Lookup(4040, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestLookup_RereadsEveryCall(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	writeResponse(t, dir, 1000, "0x01\n")
	got, err := s.Lookup(1000, 1)
	if err != nil || !equal(got, []uint16{1}) {
		t.Fatalf("first lookup values=%v err=%v", got, err)
	}

	writeResponse(t, dir, 1000, "0x02\n")
	got, err = s.Lookup(1000, 1)
	if err != nil || !equal(got, []uint16{2}) {
		t.Fatalf("second lookup must see new content, values=%v err=%v", got, err)
	}
}

func TestAddresses(t *testing.T) {
	dir := t.TempDir()
	writeResponse(t, dir, 2096, "0x01\n")
	writeResponse(t, dir, 1000, "0x01\n")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := New(dir).Addresses()
	if err != nil {
		t.Fatalf("Addresses err=%v", err)
	}
	if !equal(got, []uint16{1000, 2096}) {
		t.Fatalf("addresses=%v want [1000 2096]", got)
	}
}
