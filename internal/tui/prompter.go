// Package tui provides the interactive prompt used to answer open
// classification questions without re-typing the whole command.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// ErrPromptAborted is returned when the user quits the prompt before
// answering every question.
var ErrPromptAborted = errors.New("prompt aborted")

// AskQuestions runs the interactive prompt for the given questions and
// returns the collected answers keyed by attribute name.
func AskQuestions(ctx context.Context, questions []model.DecisionPoint) (map[string]string, error) {
	if len(questions) == 0 {
		return map[string]string{}, nil
	}

	program := tea.NewProgram(newModel(questions), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("interactive prompt failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok || m.aborted {
		return nil, ErrPromptAborted
	}
	return m.answers, nil
}
