// Package manifest reads and validates the frontmatter header of a skill's
// SKILL.md entry point. ValidateSkill enforces the required fields with an
// explicit line scan and stops at the first violation. Lint goes further: it
// decodes the header as YAML and checks it against an embedded JSON Schema,
// collecting every issue it finds.
package manifest
