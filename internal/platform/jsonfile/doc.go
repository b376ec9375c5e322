// Package jsonfile persists the task list as a pretty-printed JSON array.
//
// The file is read and written through an afero.Fs so the same code runs
// against the real filesystem in the binary and an in-memory filesystem in
// tests. Saves are atomic: the array is written to a sibling temp file and
// renamed over the target.
package jsonfile
