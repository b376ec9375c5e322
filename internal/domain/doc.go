// Package domain contains the core entities of the task tracker: the Task
// value, its Priority, and the deadline formats shared by persistence and
// the interactive prompts. It is independent of any storage or console
// mechanism.
package domain
