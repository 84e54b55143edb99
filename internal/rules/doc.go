// Package rules loads and validates the pattern rule registry from YAML.
// Rule order in the source file is preserved so report grouping stays
// reproducible. The registry is internal; the CLI maps rule files into it.
package rules
