// Package leakscope provides the command-line interface for the Leakscope
// tool. It configures subcommands (scan, rules, completion), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/leakscope/leakscope/cmd/leakscope"
//	func main() { leakscope.Execute() }
package leakscope
