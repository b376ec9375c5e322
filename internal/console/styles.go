package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/phrazzld/taskman/internal/domain"
)

// LabelKind names the source of a background block.
type LabelKind string

// Known labels.
const (
	LabelReminder LabelKind = "Reminder"
	LabelHint     LabelKind = "Hint"
	LabelAutoSave LabelKind = "AutoSave"
)

// Styles are the lipgloss styles bound to one output. Colour is dropped
// automatically when the output is not a terminal.
type Styles struct {
	Heading lipgloss.Style
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style

	reminder lipgloss.Style
	hint     lipgloss.Style
	autosave lipgloss.Style

	low    lipgloss.Style
	medium lipgloss.Style
	high   lipgloss.Style
}

// NewStyles builds the palette for out.
func NewStyles(out io.Writer) *Styles {
	r := lipgloss.NewRenderer(out)
	return &Styles{
		Heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Title:   r.NewStyle().Bold(true),
		Prompt:  r.NewStyle().Foreground(lipgloss.Color("#4A90E2")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Warn:    r.NewStyle().Foreground(lipgloss.Color("#F7DC6F")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),

		reminder: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7DC6F")),
		hint:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BCD4")),
		autosave: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),

		low:    r.NewStyle().Foreground(lipgloss.Color("#888888")),
		medium: r.NewStyle().Foreground(lipgloss.Color("#F7DC6F")),
		high:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func (s *Styles) label(kind LabelKind) lipgloss.Style {
	switch kind {
	case LabelReminder:
		return s.reminder
	case LabelHint:
		return s.hint
	default:
		return s.autosave
	}
}

func (s *Styles) priority(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.high
	case domain.PriorityMedium:
		return s.medium
	default:
		return s.low
	}
}
