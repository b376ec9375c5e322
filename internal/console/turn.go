package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/taskman/internal/domain"
	"github.com/phrazzld/taskman/internal/store"
)

// Turn is the console handle given to the holder of the gate. All output
// for one interaction goes through it.
type Turn struct {
	out    io.Writer
	styles *Styles
}

// Writer exposes the underlying writer.
func (t *Turn) Writer() io.Writer {
	return t.out
}

// Printf writes formatted text.
func (t *Turn) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// Println writes args followed by a newline.
func (t *Turn) Println(args ...any) {
	fmt.Fprintln(t.out, args...)
}

// Prompt writes a prompt without a trailing newline.
func (t *Turn) Prompt(text string) {
	fmt.Fprint(t.out, t.styles.Prompt.Render(text))
}

// Heading writes a section heading followed by a blank line.
func (t *Turn) Heading(text string) {
	fmt.Fprintf(t.out, "\n%s\n\n", t.styles.Heading.Render(text))
}

// Label writes a bracketed worker label such as "[Reminder]".
func (t *Turn) Label(kind LabelKind, text string) {
	fmt.Fprintln(t.out, t.styles.label(kind).Render("["+string(kind)+"]")+" "+text)
}

// Success writes a confirmation line.
func (t *Turn) Success(format string, args ...any) {
	fmt.Fprintln(t.out, t.styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Warn writes a validation or cancellation notice.
func (t *Turn) Warn(format string, args ...any) {
	fmt.Fprintln(t.out, t.styles.Warn.Render(fmt.Sprintf(format, args...)))
}

// Error writes a failure notice.
func (t *Turn) Error(format string, args ...any) {
	fmt.Fprintln(t.out, t.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Task prints one task. A negative index omits the "[i]" prefix.
func (t *Turn) Task(index int, task domain.Task) {
	var b strings.Builder
	if index >= 0 {
		fmt.Fprintf(&b, "[%d] ", index)
	}
	fmt.Fprintf(&b, "Title: %s\n", t.styles.Title.Render(task.Title))
	fmt.Fprintf(&b, "Description: %s\n", task.Description)
	fmt.Fprintf(&b, "Deadline: %s\n", task.Deadline.Format(domain.DisplayLayout))
	fmt.Fprintf(&b, "Priority: %s\n", t.styles.priority(task.Priority).Render(task.Priority.String()))
	fmt.Fprintf(&b, "Tag: %s\n", task.Tag)
	status := "open"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(&b, "Status: %s\n\n", status)
	io.WriteString(t.out, b.String())
}

// Tasks prints tasks without indexes, or empty when there are none.
func (t *Turn) Tasks(tasks []domain.Task, empty string) {
	if len(tasks) == 0 {
		t.Println(empty)
		return
	}
	for _, task := range tasks {
		t.Task(-1, task)
	}
}

// Entries prints indexed tasks, or empty when there are none.
func (t *Turn) Entries(entries []store.Entry, empty string) {
	if len(entries) == 0 {
		t.Println(empty)
		return
	}
	for _, e := range entries {
		t.Task(e.Index, e.Task)
	}
}
