// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"bytes"
	"strings"
)

// NormalizeNewlines repairs line terminators in text output read from an
// external process. Windows poppler builds write stdout in text mode, so a
// piped read sees CRLF (and occasionally bare CR) where the tool meant LF.
// All terminator variants collapse to a single LF; the transform is
// idempotent. Never apply this to binary output such as PNG data.
func NormalizeNewlines(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return b
}

// SplitLines normalizes terminators and splits text output into lines,
// dropping the final empty element produced by a trailing newline.
func SplitLines(b []byte) []string {
	normalized := string(NormalizeNewlines(b))
	normalized = strings.TrimSuffix(normalized, "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}
