package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storyquiz/internal/ui/theme"
)

// QuestionInput wraps bubbles/textinput for typing a comprehension
// question.
type QuestionInput struct {
	Model textinput.Model
}

// NewQuestionInput creates a focused question input.
func NewQuestionInput(placeholder string) QuestionInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Focus()
	return QuestionInput{Model: ti}
}

// Init returns the initial command.
func (q QuestionInput) Init() tea.Cmd {
	return q.Model.Focus()
}

// Update handles messages.
func (q QuestionInput) Update(msg tea.Msg) (QuestionInput, tea.Cmd) {
	var cmd tea.Cmd
	q.Model, cmd = q.Model.Update(msg)
	return q, cmd
}

// View renders the input with a prompt hint.
func (q QuestionInput) View() string {
	return q.Model.View() + "\n" + theme.Hint.Render("Press Enter to ask")
}

// Value returns the trimmed question text.
func (q QuestionInput) Value() string {
	return strings.TrimSpace(q.Model.Value())
}

// Reset clears the input for the next question.
func (q *QuestionInput) Reset() {
	q.Model.SetValue("")
}
