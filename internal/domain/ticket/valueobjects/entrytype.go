package valueobjects

import "fmt"

// EntryType distinguishes free-text comments from system-written history
// entries on a ticket's timeline.
type EntryType string

const (
	EntryComment      EntryType = "comment"
	EntryStatusChange EntryType = "status_change"
	EntryAssignment   EntryType = "assignment"
)

var validEntryTypes = map[EntryType]bool{
	EntryComment:      true,
	EntryStatusChange: true,
	EntryAssignment:   true,
}

func (e EntryType) String() string {
	return string(e)
}

func (e EntryType) IsValid() bool {
	return validEntryTypes[e]
}

// IsSystem reports whether the entry is written by the application rather
// than typed by a user.
func (e EntryType) IsSystem() bool {
	return e == EntryStatusChange || e == EntryAssignment
}

func NewEntryType(s string) (EntryType, error) {
	e := EntryType(s)
	if !e.IsValid() {
		return "", fmt.Errorf("invalid entry type: %s", s)
	}
	return e, nil
}
