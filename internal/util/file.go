package util

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// Evidence upload constraints.
const (
	MimeImage = "image/"
	MimePDF   = "application/pdf"
)

var AllowedEvidenceExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

// ValidateMimeType sniffs the content and checks it against the allowed MIME
// prefixes or full types, e.g. "image/", "application/pdf".
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func AllowedEvidenceExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedEvidenceExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
