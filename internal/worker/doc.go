// Package worker runs the background routines that share the console with
// the command loop: the reminder, the idle hint and the autosave.
//
// Each routine is a Periodic: a cancellable loop that performs one unit of
// work, then waits for its interval or for Stop, whichever comes first.
// Units print through the console gate, so they wait for the user's current
// command to finish and never interleave with other output.
package worker
