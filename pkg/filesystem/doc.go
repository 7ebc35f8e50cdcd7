// Package filesystem provides the filesystem implementations fixtures are
// materialized through.
//
// The OS implementation is the default and is what external processes (git,
// the code under test) observe. The memory implementation, backed by afero,
// keeps a fixture entirely in process for fast tests that never leave Go.
package filesystem
