// Package config loads Leakscope tool configuration from local and global
// YAML files with precedence rules. It is internal; CLI code maps flags and
// files into engine configuration. Rule definitions live in internal/rules,
// not here.
package config
