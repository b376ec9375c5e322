// Package cli implements the interactive command loop.
//
// Lines are read by a dedicated goroutine so that waiting for input can be
// abandoned when the process is asked to stop. Every command runs inside a
// single console turn: its prompts, its store access and its output.
package cli
