// Package forms resolves cleaned report titles to Portal Sehat form
// identifiers using the operator-supplied mapping table.
package forms

import "fmt"

// UnmappedTitleError reports a title absent from the mapping table.
type UnmappedTitleError struct {
	Title string
}

func (e *UnmappedTitleError) Error() string {
	return fmt.Sprintf("judul '%s' tidak terdaftar di mapping", e.Title)
}

// Resolver looks up report titles against an immutable title→formulir table.
type Resolver struct {
	mapping map[string]string
}

// NewResolver creates a Resolver over the given mapping table. The table
// is copied so later mutation of the source map cannot leak in.
func NewResolver(mapping map[string]string) *Resolver {
	m := make(map[string]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return &Resolver{mapping: m}
}

// Resolve returns the form identifier for a cleaned title. The match is
// exact: no trimming, no fuzzy lookup. A miss returns UnmappedTitleError
// naming the offending title.
func (r *Resolver) Resolve(title string) (string, error) {
	id, ok := r.mapping[title]
	if !ok {
		return "", &UnmappedTitleError{Title: title}
	}
	return id, nil
}
