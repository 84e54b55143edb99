// Package engine contains the core scanning pipeline: directory traversal,
// the bounded worker pool, and thread-safe result aggregation. This package
// is internal; external consumers should use the stable facade in pkg/core.
package engine
