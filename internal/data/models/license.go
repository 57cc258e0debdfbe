package models

// LicenseInfo is the license GitHub detected for a repository.
type LicenseInfo struct {
	Found  bool
	SPDXID string
	Name   string
	Path   string
}

// Label returns the most specific human readable identifier available.
func (l LicenseInfo) Label() string {
	switch {
	case l.SPDXID != "" && l.SPDXID != "NOASSERTION":
		return l.SPDXID
	case l.Name != "":
		return l.Name
	default:
		return l.Path
	}
}
