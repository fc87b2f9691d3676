package options

import "github.com/google/uuid"

// Tag identifies the origin of an assertion.
type Tag string

const (
	// TagUser marks assertions made on behalf of a person. They take user
	// precedence during reconciliation and are never treated as a driver batch.
	TagUser Tag = "00000000"

	// TagSeed marks the built-in default recorded when a Setting is created.
	TagSeed Tag = "ffffffff"
)

// NewTag returns a fresh driver tag.
func NewTag() Tag {
	return Tag(uuid.NewString())
}

func (t Tag) String() string {
	return string(t)
}

// IsUser reports whether t is the reserved user tag.
func (t Tag) IsUser() bool {
	return t == TagUser
}
