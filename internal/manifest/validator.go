package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/agentx-labs/skillkit/internal/naming"
)

// ValidateSkill checks that path is a skill directory with a conforming
// SKILL.md. Checks run in a fixed order and the first failure is returned:
// directory, entry point, frontmatter markers, name, description.
func ValidateSkill(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: skill directory %s", ErrNotFound, path)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	// The frontmatter name is compared against the real directory, not a
	// symlink pointing at it.
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	entry := filepath.Join(root, EntryPoint)
	data, err := os.ReadFile(entry)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s in %s", ErrNotFound, EntryPoint, path)
		}
		return fmt.Errorf("reading %s: %w", entry, err)
	}

	return ValidateDocument(string(data), filepath.Base(root))
}

// ValidateDocument applies the frontmatter rules to the contents of a
// SKILL.md whose containing directory is named dirName.
func ValidateDocument(content, dirName string) error {
	block, _, err := Split(content)
	if err != nil {
		return err
	}

	fm := ParseFields(block)

	if !fm.HasName {
		return fmt.Errorf("%w: missing 'name' field", ErrMalformedMetadata)
	}
	if err := naming.Validate(fm.Name); err != nil {
		return fmt.Errorf("%w: name: %w", ErrMalformedMetadata, err)
	}
	if fm.Name != dirName {
		return fmt.Errorf("%w: frontmatter name %q does not match directory %q", ErrNameMismatch, fm.Name, dirName)
	}

	if !fm.HasDescription {
		return fmt.Errorf("%w: missing 'description' field", ErrMalformedMetadata)
	}
	n := utf8.RuneCountInString(fm.Description)
	if n == 0 {
		return fmt.Errorf("%w: description must not be empty", ErrMalformedMetadata)
	}
	if n > MaxDescriptionLength {
		return fmt.Errorf("%w: description is %d characters, maximum is %d", ErrMalformedMetadata, n, MaxDescriptionLength)
	}
	if strings.ContainsAny(fm.Description, "<>") {
		return fmt.Errorf("%w: description must not contain angle brackets (< or >)", ErrMalformedMetadata)
	}

	return nil
}
