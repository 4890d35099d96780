// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fsutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "nested", "page.png")
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0xff}

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch: got %v, want %v", got, data)
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.bin")

	if err := WriteFile(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("got %q, want overwrite to %q", got, "second")
	}
}

func TestHashBytes_Deterministic(t *testing.T) {
	data := []byte("%PDF-1.7 fake content")

	first := HashBytes(data)
	second := HashBytes(data)
	if first != second {
		t.Errorf("hash not deterministic: %q vs %q", first, second)
	}
	if len(first) != 64 {
		t.Errorf("hex sha256 should be 64 chars, got %d", len(first))
	}
	if other := HashBytes([]byte("different")); other == first {
		t.Error("different input should produce a different digest")
	}
}

func TestHashFile_MatchesHashBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	data := []byte("%PDF-1.4\nsome body\n%%EOF")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := HashBytes(data); got != want {
		t.Errorf("HashFile = %q, want %q", got, want)
	}

	if _, err := HashFile(filepath.Join(dir, "absent.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		suffix string
		ext    string
		want   string
	}{
		{name: "plain", path: "/data/report.pdf", suffix: "", ext: ".png", want: "report.png"},
		{name: "with suffix", path: "report.pdf", suffix: "thumb", ext: ".png", want: "report-thumb.png"},
		{name: "uppercase extension", path: "SCAN.PDF", suffix: "", ext: ".png", want: "SCAN.png"},
		{name: "dotted base", path: "v1.2-notes.pdf", suffix: "", ext: ".txt", want: "v1.2-notes.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputName(tt.path, tt.suffix, tt.ext); got != tt.want {
				t.Errorf("OutputName(%q, %q, %q) = %q, want %q", tt.path, tt.suffix, tt.ext, got, tt.want)
			}
		})
	}
}
