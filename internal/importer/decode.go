package importer

// decode.go handles source-file character encoding. Import files often
// come from spreadsheet exports in a legacy single-byte encoding, so
// the byte stream is transcoded to UTF-8 while reading. Transcoding a
// single-byte encoding cannot fail outright; bytes that do not map
// surface as U+FFFD in the decoded cells and are caught per row.

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the source encoding assumed when none is
// configured. windows-1252 is the usual suspect for files exported by
// desktop spreadsheet tools.
const DefaultEncoding = "windows-1252"

// newDecodingReader wraps r so that bytes in the named IANA character
// set are read as UTF-8. Names that already mean UTF-8 pass through.
func newDecodingReader(r io.Reader, encodingName string) (io.Reader, error) {
	name := strings.TrimSpace(encodingName)
	if name == "" {
		name = DefaultEncoding
	}
	if strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return r, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported source encoding %q", encodingName)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// rowHasEncodingError reports whether any cell carries a replacement
// rune from transcoding, meaning the original bytes were not valid in
// the configured source encoding.
func rowHasEncodingError(row []string) bool {
	for _, cell := range row {
		if strings.ContainsRune(cell, utf8.RuneError) {
			return true
		}
	}
	return false
}
