// Package finder discovers files and directories whose names follow a
// placeholder template, and parses the matching names back into structured
// records.
//
// A Finder pairs a path-level template with a file-level template, for
// example:
//
//	f, err := finder.New(
//		"/data/cmip6/{exp}/{table}/{varn}/{model}/{ens}",
//		"{varn}_{table}_{model}_{exp}_{ens}_{time}.nc",
//	)
//
// FindFiles scans the filesystem for names matching both levels and returns a
// Result table with one row per file and one column per placeholder. FindPaths
// stops at the path level, letting a caller enumerate directories before
// committing to a full file scan. Queries accept per-placeholder Filters that
// prune the traversal early and are re-checked exactly against the parsed
// values.
//
// Scanning degrades gracefully: unreadable directories and missing path
// fragments become warnings on the Result rather than failing the query, so
// partially present archives still yield their discoverable subset.
package finder
