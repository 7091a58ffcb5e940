// Package app is the interactive question session: the child types a
// question about the story, the pipeline builds a three-option quiz, and
// the child picks an answer.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storyquiz/internal/llm"
	"github.com/abhisek/storyquiz/internal/quizgen"
	"github.com/abhisek/storyquiz/internal/story"
	"github.com/abhisek/storyquiz/internal/ui/components"
	"github.com/abhisek/storyquiz/internal/ui/theme"
)

// Session holds what the app needs to answer questions about one story.
type Session struct {
	Pipeline *quizgen.Pipeline
	Facts    story.Facts
	Brief    string
	Title    string
}

type state int

const (
	stateAsking state = iota
	stateWaiting
	stateChoosing
	stateRevealed
)

type answerMsg struct {
	result *quizgen.Result
}

type answerErrMsg struct {
	err error
}

type model struct {
	session Session
	state   state

	input   components.QuestionInput
	spin    spinner.Model
	choice  components.MultiChoice
	result  *quizgen.Result
	history []llm.Message

	asked   int
	right   int
	lastErr error
	width   int
	height  int
}

func newModel(session Session) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return model{
		session: session,
		input:   components.NewQuestionInput("What would you like to ask about the story?"),
		spin:    sp,
	}
}

func (m model) Init() tea.Cmd {
	return m.input.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case answerMsg:
		m.state = stateChoosing
		m.result = msg.result
		m.lastErr = nil
		m.choice = components.NewMultiChoice(msg.result.Question, optionTexts(msg.result), correctIndex(msg.result))
		return m, nil

	case answerErrMsg:
		m.state = stateAsking
		m.lastErr = msg.err
		m.input.Reset()
		return m, m.input.Init()

	case spinner.TickMsg:
		if m.state == stateWaiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.state {
	case stateAsking:
		return m.updateAsking(msg)
	case stateChoosing:
		return m.updateChoosing(msg)
	case stateRevealed:
		return m.updateRevealed(msg)
	}
	return m, nil
}

func (m model) updateAsking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		question := m.input.Value()
		if question == "" {
			return m, nil
		}
		m.state = stateWaiting
		return m, tea.Batch(m.spin.Tick, m.askCmd(question))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateChoosing(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.choice, cmd = m.choice.Update(msg)
	if m.choice.Submitted {
		m.state = stateRevealed
		m.asked++
		if m.choice.IsCorrect() {
			m.right++
		}
		m.history = appendTurn(m.history, m.result)
	}
	return m, cmd
}

func (m model) updateRevealed(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "enter", "n":
		m.state = stateAsking
		m.result = nil
		m.input.Reset()
		return m, m.input.Init()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// askCmd runs the pipeline off the UI goroutine.
func (m model) askCmd(question string) tea.Cmd {
	session := m.session
	history := append([]llm.Message{}, m.history...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		res, err := session.Pipeline.Answer(ctx, quizgen.AskInput{
			Question: question,
			History:  history,
			Brief:    session.Brief,
			Facts:    session.Facts,
		})
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerMsg{result: res}
	}
}

func (m model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	title := m.session.Title
	if title == "" {
		title = "Story Quiz"
	}

	var body string
	switch m.state {
	case stateAsking:
		body = m.input.View()
		if m.lastErr != nil {
			body += "\n\n" + theme.Incorrect.Render(friendlyError(m.lastErr))
		}
	case stateWaiting:
		body = m.spin.View() + " " + theme.Hint.Render("Thinking about the story...")
	case stateChoosing:
		body = m.choice.View() + "\n" + theme.Hint.Render("↑↓ or a/b/c to choose, Enter to lock in")
	case stateRevealed:
		body = m.choice.View() + "\n" + m.revealView()
	}

	header := theme.Title.Render(title)
	score := theme.Subtitle.Render(fmt.Sprintf("%d of %d right", m.right, m.asked))

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, score, "", body))
	return v
}

func (m model) revealView() string {
	var s string
	if m.choice.IsCorrect() {
		s = theme.Correct.Render("That's right!")
	} else {
		s = theme.Incorrect.Render("Not quite.")
	}

	correct := m.result.Correct()
	if correct.Evidence != "" {
		s += "\n" + theme.Evidence.Render("The book says: \""+correct.Evidence+"\"")
	}
	s += "\n\n" + theme.Hint.Render("Enter for another question, q to quit")
	return s
}

// friendlyError maps pipeline errors to child-appropriate wording.
func friendlyError(err error) string {
	if errors.Is(err, quizgen.ErrEmptyQuestion) {
		return "I could not hear a question. Try again?"
	}
	return "The story helper is napping. Try again in a moment."
}

func optionTexts(res *quizgen.Result) []string {
	out := make([]string, len(res.Options))
	for i, opt := range res.Options {
		out[i] = opt.Text
	}
	return out
}

func correctIndex(res *quizgen.Result) int {
	for i, opt := range res.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return 0
}

// appendTurn records the answered round so follow-up questions resolve.
func appendTurn(history []llm.Message, res *quizgen.Result) []llm.Message {
	return append(history,
		llm.Message{Role: llm.RoleUser, Content: res.Question},
		llm.Message{Role: llm.RoleAssistant, Content: res.Correct().Text},
	)
}

// Run starts the Bubble Tea program for one story session.
func Run(session Session) error {
	p := tea.NewProgram(newModel(session))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
