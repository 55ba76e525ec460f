// Package config manages user-level settings stored at ~/.skillkit/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default archive output directory and where instructions and agents are
// scaffolded. Every key can also be set through a SKILLKIT_<KEY> variable.
package config
