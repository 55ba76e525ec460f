package manifest

import "errors"

const (
	// EntryPoint is the file every skill directory must contain.
	EntryPoint = "SKILL.md"

	// Marker opens and closes the frontmatter block.
	Marker = "---"

	// MaxDescriptionLength is the longest description accepted.
	MaxDescriptionLength = 1024
)

var (
	ErrNotFound          = errors.New("not found")
	ErrNotDirectory      = errors.New("not a directory")
	ErrMalformedMetadata = errors.New("malformed frontmatter")
	ErrNameMismatch      = errors.New("name mismatch")
)

// Frontmatter holds the two keys the validator reads from a SKILL.md header.
// The Has* flags distinguish an absent key from one with an empty value.
type Frontmatter struct {
	Name           string
	Description    string
	HasName        bool
	HasDescription bool
}
