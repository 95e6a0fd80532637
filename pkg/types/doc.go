// Package types defines the core record types shared across benchkit:
// capabilities detected on the host, step outcomes produced by the
// runner, the run-level state machine, and the small interfaces the
// rest of the codebase is written against.
package types
