package validator

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	urlRegex = regexp.MustCompile(`^https?:\/\/(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)$`)

	// AllowedImageTypes lists the file extensions accepted for report photos
	AllowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

// Field is a named form value checked by Required.
type Field struct {
	Name  string
	Value string
}

// IsBlank reports whether s is empty after trimming whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Required returns the names of the fields that are blank, in input order
func Required(fields ...Field) []string {
	var missing []string
	for _, f := range fields {
		if IsBlank(f.Value) {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// IsValidURL checks if the URL format is valid
func IsValidURL(url string) bool {
	if IsBlank(url) {
		return false
	}
	return urlRegex.MatchString(url)
}

// IsAllowedImageName checks the extension of an uploaded file name
func IsAllowedImageName(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedImageTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}
