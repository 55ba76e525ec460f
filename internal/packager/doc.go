// Package packager bundles a validated skill directory into a zip archive
// for distribution. Entries are prefixed with the skill's own name so the
// archive unpacks into a single directory.
package packager
