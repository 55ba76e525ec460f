// Package naming holds the identifier rules shared by every asset kind. An
// identifier is a lowercase kebab-case string of 1-64 characters; it names a
// skill directory, an instruction topic, or an agent role.
package naming
