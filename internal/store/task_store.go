package store

import (
	"slices"
	"strings"
	"time"

	"github.com/phrazzld/taskman/internal/domain"
)

// Entry pairs a task with its current position in the store, so listings
// can show the index a later edit or delete would use.
type Entry struct {
	Index int
	domain.Task
}

// TaskStore owns the ordered task list. Insertion order is preserved;
// sorting returns copies. It performs no printing or logging.
//
// TaskStore is not safe for concurrent use on its own. The application
// serializes all access through the console gate.
type TaskStore struct {
	tasks  []domain.Task
	window time.Duration
}

// NewTaskStore creates an empty store. A non-positive upcomingWindow falls
// back to domain.UpcomingWindow.
func NewTaskStore(upcomingWindow time.Duration) *TaskStore {
	if upcomingWindow <= 0 {
		upcomingWindow = domain.UpcomingWindow
	}
	return &TaskStore{window: upcomingWindow}
}

// Add appends task to the end of the list.
func (s *TaskStore) Add(task domain.Task) {
	s.tasks = append(s.tasks, task)
}

// Remove deletes the task at index. It returns false if index is out of range.
func (s *TaskStore) Remove(index int) bool {
	if !s.valid(index) {
		return false
	}
	s.tasks = slices.Delete(s.tasks, index, index+1)
	return true
}

// Edit replaces the task at index. It returns false if index is out of range.
func (s *TaskStore) Edit(index int, task domain.Task) bool {
	if !s.valid(index) {
		return false
	}
	s.tasks[index] = task
	return true
}

// Get returns a copy of the task at index.
func (s *TaskStore) Get(index int) (domain.Task, error) {
	if !s.valid(index) {
		return domain.Task{}, indexError("get", index, len(s.tasks))
	}
	return s.tasks[index], nil
}

// GetRef returns a pointer to the stored task at index. The pointer is
// invalidated by the next Add, Remove or Replace.
func (s *TaskStore) GetRef(index int) (*domain.Task, error) {
	if !s.valid(index) {
		return nil, indexError("get", index, len(s.tasks))
	}
	return &s.tasks[index], nil
}

// List returns a copy of all tasks in stored order.
func (s *TaskStore) List() []domain.Task {
	return slices.Clone(s.tasks)
}

// Entries returns every task with its index.
func (s *TaskStore) Entries() []Entry {
	return s.collect(func(domain.Task) bool { return true })
}

// Replace swaps the whole list, used when reloading from disk.
func (s *TaskStore) Replace(tasks []domain.Task) {
	s.tasks = slices.Clone(tasks)
}

// Count returns the number of tasks.
func (s *TaskStore) Count() int {
	return len(s.tasks)
}

// SortedByDeadline returns a copy ordered by ascending deadline. Ties keep
// insertion order.
func (s *TaskStore) SortedByDeadline() []domain.Task {
	sorted := slices.Clone(s.tasks)
	slices.SortStableFunc(sorted, func(a, b domain.Task) int {
		return a.Deadline.Compare(b.Deadline)
	})
	return sorted
}

// SortedByPriority returns a copy ordered High, Medium, Low. Ties keep
// insertion order.
func (s *TaskStore) SortedByPriority() []domain.Task {
	sorted := slices.Clone(s.tasks)
	slices.SortStableFunc(sorted, func(a, b domain.Task) int {
		return int(b.Priority) - int(a.Priority)
	})
	return sorted
}

// FindByKeyword returns tasks whose title or description contains keyword,
// ignoring case. An empty keyword matches every task.
func (s *TaskStore) FindByKeyword(keyword string) []domain.Task {
	needle := strings.ToLower(keyword)
	var out []domain.Task
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByTag returns tasks whose tag equals tag, ignoring case.
func (s *TaskStore) FilterByTag(tag string) []domain.Task {
	var out []domain.Task
	for _, t := range s.tasks {
		if strings.EqualFold(t.Tag, tag) {
			out = append(out, t)
		}
	}
	return out
}

// Overdue returns open tasks whose deadline is before now.
func (s *TaskStore) Overdue(now time.Time) []Entry {
	return s.collect(func(t domain.Task) bool { return t.IsOverdue(now) })
}

// Upcoming returns open tasks due within the upcoming window of now.
func (s *TaskStore) Upcoming(now time.Time) []Entry {
	return s.collect(func(t domain.Task) bool { return t.IsUpcoming(now, s.window) })
}

// Completed returns tasks marked completed.
func (s *TaskStore) Completed() []Entry {
	return s.collect(func(t domain.Task) bool { return t.Completed })
}

// DueBetween returns tasks with from <= deadline <= to, regardless of status.
func (s *TaskStore) DueBetween(from, to time.Time) []Entry {
	return s.collect(func(t domain.Task) bool {
		return !t.Deadline.Before(from) && !t.Deadline.After(to)
	})
}

// CountOverdue returns len(Overdue(now)) without allocating.
func (s *TaskStore) CountOverdue(now time.Time) int {
	n := 0
	for _, t := range s.tasks {
		if t.IsOverdue(now) {
			n++
		}
	}
	return n
}

// CountUpcoming returns len(Upcoming(now)) without allocating.
func (s *TaskStore) CountUpcoming(now time.Time) int {
	n := 0
	for _, t := range s.tasks {
		if t.IsUpcoming(now, s.window) {
			n++
		}
	}
	return n
}

func (s *TaskStore) valid(index int) bool {
	return index >= 0 && index < len(s.tasks)
}

func (s *TaskStore) collect(keep func(domain.Task) bool) []Entry {
	var out []Entry
	for i, t := range s.tasks {
		if keep(t) {
			out = append(out, Entry{Index: i, Task: t})
		}
	}
	return out
}
