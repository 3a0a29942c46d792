package document

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"lessonplan/pkg/apperr"
)

// Extract picks a reader by file extension.
func Extract(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return FromDocx(data)
	case ".html", ".htm":
		text, _, err := FromHTML(bytes.NewReader(data))
		return text, err
	case ".txt", ".md", "":
		if !utf8.Valid(data) {
			return "", apperr.Wrap(apperr.ErrValidation, "extract", "file is not utf-8 text", nil)
		}
		return strings.TrimSpace(strings.TrimPrefix(string(data), "\uFEFF")), nil
	default:
		return "", apperr.Wrap(apperr.ErrValidation, "extract", "unsupported file type "+filepath.Ext(name), nil)
	}
}
