// Package console owns the terminal output shared by the command loop and
// the background workers.
//
// Gate is the single mutual-exclusion point for console interaction: a
// command's prompts and output, or one worker's printed block, happen inside
// one Turn so no two blocks interleave. The gate also serializes access to
// the task store. Acquisition honours context cancellation, which lets a
// stopping worker give up waiting for the gate.
package console
