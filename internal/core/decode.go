package core

// decode.go turns raw CSV bytes into text the line tokenizer can consume.
//
// Roster exports arrive from a few different tools:
//
//   - LMS exports: UTF-8, sometimes with a BOM
//   - Spreadsheets re-saved from Excel on Windows: Windows-1252
//
// DecodeText strips the BOM and falls back to Windows-1252 only when the
// bytes are not valid UTF-8, so accented names survive either way.

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts CSV file content to a string.
func DecodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}
	return string(decoded)
}
