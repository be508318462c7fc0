package domain

import (
	"sort"
	"strings"
)

// FileKind classifies a result file by its extension.
type FileKind int

const (
	// KindGeneric marks a file whose extension matches no known format set.
	KindGeneric FileKind = iota
	// KindRaster marks a file with a raster extension.
	KindRaster
	// KindVector marks a file with a vector extension.
	KindVector
)

func (k FileKind) String() string {
	switch k {
	case KindRaster:
		return "raster"
	case KindVector:
		return "vector"
	default:
		return "generic"
	}
}

// FormatSet is a set of file extensions (stored without the leading dot,
// lower-cased) that the external tool reports as a supported format family.
// An empty set classifies every file as generic.
type FormatSet map[string]struct{}

// NewFormatSet builds a set from extension tokens, normalizing each one.
func NewFormatSet(exts ...string) FormatSet {
	s := make(FormatSet, len(exts))
	for _, ext := range exts {
		s.Add(ext)
	}
	return s
}

// Add inserts a normalized extension.
func (s FormatSet) Add(ext string) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		return
	}
	s[ext] = struct{}{}
}

// Has reports whether the (dot-optional) extension belongs to the set.
func (s FormatSet) Has(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	_, ok := s[ext]
	return ok
}

// Extensions returns the sorted extension list.
func (s FormatSet) Extensions() []string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// File is a result file declared by a parameter and present on disk.
type File struct {
	Path string
	Kind FileKind
}
