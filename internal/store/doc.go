// Package store holds the in-memory task list shared by the command loop
// and the background workers. The list is not locked internally: every
// caller must hold the console gate for the duration of its access.
package store
