package domain

import "time"

// GroupStatus enumerates listing states for directory entries.
type GroupStatus string

const (
	GroupStatusAktif    GroupStatus = "AKTIF"
	GroupStatusNonaktif GroupStatus = "NONAKTIF"
)

// ValidGroupStatus reports whether s is one of the two accepted statuses.
func ValidGroupStatus(s string) bool {
	switch GroupStatus(s) {
	case GroupStatusAktif, GroupStatusNonaktif:
		return true
	}
	return false
}

// Group is a WhatsApp group listing in the public directory.
//
// Jenis is a free-text category label; the set of known categories is derived
// at read time from the rows that exist, not from an enumeration.
type Group struct {
	ID        int64
	Nama      string
	Link      string
	Jenis     string
	Status    GroupStatus
	CreatedAt time.Time
}
