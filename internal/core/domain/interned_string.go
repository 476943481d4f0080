package domain

import (
	"cmp"
	"slices"
	"unique"
)

// InternedString is a value object that wraps a unique.Handle[string].
// Dependency paths repeat across every snapshot of a lockfile, so node
// identifiers and package names are interned.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// NewInternedStrings interns every string of s.
func NewInternedStrings(s []string) []InternedString {
	res := make([]InternedString, len(s))
	for i, s := range s {
		res[i] = NewInternedString(s)
	}
	return res
}

// String returns the underlying string value.
// The zero value yields the empty string.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether is was never assigned.
func (is InternedString) IsZero() bool {
	return is.h == unique.Handle[string]{}
}

// Compare orders two interned strings by their string value.
func (is InternedString) Compare(other InternedString) int {
	return cmp.Compare(is.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}

// SortInterned sorts ids in place by their string value.
func SortInterned(ids []InternedString) {
	slices.SortFunc(ids, InternedString.Compare)
}

// Strings converts ids to plain strings.
func Strings(ids []InternedString) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
