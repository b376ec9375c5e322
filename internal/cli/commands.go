package cli

import (
	"fmt"
	"strings"

	"github.com/phrazzld/taskman/internal/console"
	"github.com/phrazzld/taskman/internal/domain"
)

// historySize is how many journal records the log command shows.
const historySize = 20

func commandTable() []command {
	return []command{
		{"help", "Help", "Show this list", (*Loop).help},
		{"list", "List", "Show all tasks", (*Loop).list},
		{"sort", "Sort", "Show tasks sorted by deadline or priority", (*Loop).sort},
		{"filter", "Filter", "Show tasks with a tag or due today", (*Loop).filter},
		{"search", "Search", "Find tasks by keyword in title or description", (*Loop).search},
		{"overdue", "Overdue", "Show open tasks past their deadline", (*Loop).overdue},
		{"upcoming", "Upcoming", "Show open tasks due in the next 48 hours", (*Loop).upcoming},
		{"completed", "Completed", "Show completed tasks", (*Loop).completed},
		{"add", "Add", "Add a new task", (*Loop).add},
		{"delete", "Delete", "Delete a task by index", (*Loop).remove},
		{"edit", "Edit", "Edit a task by index", (*Loop).edit},
		{"save", "Save", "Save tasks to the task file", (*Loop).saveCmd},
		{"load", "Load", "Replace tasks with the task file contents", (*Loop).load},
		{"reminder", "Reminder", "Turn deadline reminders on or off", (*Loop).toggleReminder},
		{"log", "Log", "Show recent activity", (*Loop).showLog},
		{"exit", "Exit", "Save and quit", (*Loop).exit},
	}
}

func (l *Loop) help(p *prompter) error {
	p.t.Heading("Available commands:")
	for _, c := range l.commands {
		p.t.Printf("  %-10s %s\n", c.name, c.help)
	}
	p.t.Println()
	return nil
}

func (l *Loop) list(p *prompter) error {
	p.t.Heading("All Loaded Tasks:")
	p.t.Entries(l.tasks.Entries(), "No tasks found.")
	return nil
}

func (l *Loop) sort(p *prompter) error {
	p.t.Println("Sort by")
	p.t.Println("1. Deadline")
	p.t.Println("2. Priority")
	opt, err := p.choice("Choose option (or 'cancel' to abort): ", 2)
	if err != nil {
		return err
	}

	var (
		heading string
		tasks   []domain.Task
	)
	if opt == 1 {
		heading, tasks = "Tasks by deadline:", l.tasks.SortedByDeadline()
	} else {
		heading, tasks = "Tasks by priority:", l.tasks.SortedByPriority()
	}
	p.t.Heading(heading)
	p.t.Tasks(tasks, "No tasks found.")
	return nil
}

func (l *Loop) filter(p *prompter) error {
	p.t.Println("Filter by")
	p.t.Println("1. Tag")
	p.t.Println("2. Today")
	opt, err := p.choice("Choose option (or 'cancel' to abort): ", 2)
	if err != nil {
		return err
	}

	if opt == 1 {
		tag, err := p.ask("Enter tag (or 'cancel' to abort): ")
		if err != nil {
			return err
		}
		p.t.Heading(fmt.Sprintf("Tasks tagged '%s':", tag))
		p.t.Tasks(l.tasks.FilterByTag(tag), fmt.Sprintf("No tasks found with tag '%s'.", tag))
		return nil
	}

	now := l.now()
	p.t.Heading("Tasks for Today:")
	p.t.Entries(l.tasks.DueBetween(domain.StartOfDay(now), domain.EndOfDay(now)), "No tasks scheduled for today.")
	return nil
}

func (l *Loop) search(p *prompter) error {
	keyword, err := p.ask("Enter keyword to search (or 'cancel' to abort): ")
	if err != nil {
		return err
	}
	p.t.Heading("Search results:")
	p.t.Tasks(l.tasks.FindByKeyword(keyword), "No matching tasks found.")
	return nil
}

func (l *Loop) overdue(p *prompter) error {
	p.t.Heading("Overdue Tasks (Not Completed):")
	p.t.Entries(l.tasks.Overdue(l.now()), "No overdue tasks.")
	return nil
}

func (l *Loop) upcoming(p *prompter) error {
	p.t.Heading("Upcoming Deadlines:")
	p.t.Entries(l.tasks.Upcoming(l.now()), "No upcoming tasks in the next 48 hours.")
	return nil
}

func (l *Loop) completed(p *prompter) error {
	p.t.Heading("Completed Tasks:")
	p.t.Entries(l.tasks.Completed(), "No completed tasks.")
	return nil
}

// add collects every field before touching the store, so a cancel at any
// prompt leaves the list as it was.
func (l *Loop) add(p *prompter) error {
	title, err := p.title("Enter task title (or 'cancel' to abort): ")
	if err != nil {
		return err
	}
	description, err := p.ask("Enter task description (or 'cancel' to abort): ")
	if err != nil {
		return err
	}
	deadline, err := p.deadline("Enter deadline (YYYY-MM-DD HH:MM) (or 'cancel' to abort): ")
	if err != nil {
		return err
	}
	priority, err := p.priority()
	if err != nil {
		return err
	}
	tag, err := p.ask("Enter task tag (or 'cancel' to abort): ")
	if err != nil {
		return err
	}
	done, err := p.yesNo("Is the task completed? (yes/no) (or 'cancel' to abort): ")
	if err != nil {
		return err
	}

	task, err := domain.NewTask(title, description, deadline, priority, tag)
	if err != nil {
		return err
	}
	task.Completed = done

	l.tasks.Add(task)
	p.t.Success("Task added.")
	l.events.LogEvent("Task added: " + task.Title)
	return nil
}

func (l *Loop) remove(p *prompter) error {
	i, err := p.index("Enter the index of the task to delete (or 'cancel' to abort): ")
	if err != nil {
		return err
	}
	task, err := l.tasks.Get(i)
	if err != nil {
		return err
	}
	l.tasks.Remove(i)
	p.t.Success("Task deleted successfully.")
	l.events.LogEvent(fmt.Sprintf("Task deleted: %s", task.Title))
	return nil
}

// edit builds an updated copy and replaces the stored task in one call.
func (l *Loop) edit(p *prompter) error {
	i, err := p.index("Enter task index to edit (or 'cancel' to abort): ")
	if err != nil {
		return err
	}
	updated, err := l.tasks.Get(i)
	if err != nil {
		return err
	}

	p.t.Println()
	p.t.Println("What do you want to edit?")
	p.t.Println("1. Toggle completed")
	p.t.Println("2. Title")
	p.t.Println("3. Deadline")
	p.t.Println("4. Cancel")
	opt, err := p.choice("Choose option: ", 4)
	if err != nil {
		return err
	}

	var change string
	switch opt {
	case 1:
		updated.Completed = !updated.Completed
		change = "status"
	case 2:
		if updated.Title, err = p.title("Enter new title (or 'cancel' to abort): "); err != nil {
			return err
		}
		change = "title"
	case 3:
		if updated.Deadline, err = p.deadline("Enter new deadline (YYYY-MM-DD HH:MM) (or 'cancel' to abort): "); err != nil {
			return err
		}
		change = "deadline"
	default:
		return ErrCancelled
	}

	l.tasks.Edit(i, updated)
	p.t.Success("Task %d updated (%s).", i, change)
	l.events.LogEvent(fmt.Sprintf("Task edited: %s (%s)", updated.Title, change))
	return nil
}

func (l *Loop) saveCmd(p *prompter) error {
	return l.save(p.t)
}

// save writes the whole list and reports the outcome on t.
func (l *Loop) save(t *console.Turn) error {
	tasks := l.tasks.List()
	if err := l.file.Save(tasks); err != nil {
		return fmt.Errorf("saving to %s: %w", l.file.Path(), err)
	}
	t.Success("Tasks saved (%d).", len(tasks))
	l.events.LogEvent(fmt.Sprintf("Saved %d tasks to %s", len(tasks), l.file.Path()))
	return nil
}

func (l *Loop) load(p *prompter) error {
	tasks, err := l.file.Load()
	if err != nil {
		return fmt.Errorf("loading from %s: %w", l.file.Path(), err)
	}
	l.tasks.Replace(tasks)
	p.t.Success("Tasks loaded (%d).", len(tasks))
	l.events.LogEvent(fmt.Sprintf("Loaded %d tasks from %s", len(tasks), l.file.Path()))
	return nil
}

func (l *Loop) toggleReminder(p *prompter) error {
	if l.reminder.Running() {
		l.reminder.Stop()
		p.t.Success("Reminders turned off.")
		l.events.LogEvent("Reminder stopped")
		return nil
	}
	l.reminder.Start()
	p.t.Success("Reminders turned on.")
	l.events.LogEvent("Reminder started")
	return nil
}

func (l *Loop) showLog(p *prompter) error {
	if l.history == nil {
		p.t.Warn("Activity log is not available.")
		return nil
	}
	records, err := l.history.History()
	if err != nil {
		return err
	}
	if len(records) > historySize {
		records = records[len(records)-historySize:]
	}

	p.t.Heading("Recent activity:")
	if len(records) == 0 {
		p.t.Println("No activity recorded yet.")
		return nil
	}
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s  %s\n", r.Timestamp, r.Message)
	}
	p.t.Printf("%s", b.String())
	return nil
}

func (l *Loop) exit(p *prompter) error {
	if err := l.save(p.t); err != nil {
		// the loop still ends; the failure is already on screen and in the log
		_ = l.report(p.t, l.byName["save"], err)
	}
	p.t.Println("Exiting...")
	l.events.LogEvent("Session ended")
	return errExit
}
