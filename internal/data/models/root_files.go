package models

import "strings"

// RootFiles lists the entries at the root of the assessed ref and path.
type RootFiles struct {
	Names []string
}

// Has reports whether a file with the given name exists. The comparison is
// case-insensitive since CITATION and citation are treated the same.
func (r RootFiles) Has(name string) bool {
	for _, n := range r.Names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// FirstOf returns the first of the candidate names present, in candidate order.
func (r RootFiles) FirstOf(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if r.Has(c) {
			return c, true
		}
	}
	return "", false
}
