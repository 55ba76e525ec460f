// Package scaffold creates new assets from embedded templates. It powers the
// "skillkit create" commands: a skill becomes a directory holding SKILL.md,
// README.md and an empty references/ folder, while instructions and agents
// are single markdown files. Existing paths are never overwritten.
package scaffold
