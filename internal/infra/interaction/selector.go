// Where: cli/internal/infra/interaction/selector.go
// What: Interactive input helpers using the huh library.
// Why: Ask for required names when a terminal is attached.
package interaction

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

var runInputPrompt = func(title, placeholder string, validate func(string) error, input *string) error {
	field := huh.NewInput().
		Title(title).
		Value(input)
	if placeholder != "" {
		field.Placeholder(placeholder)
	}
	if validate != nil {
		field.Validate(validate)
	}
	return field.Run()
}

// HuhPrompter implements the Prompter interface using the huh TUI library.
type HuhPrompter struct{}

func (p HuhPrompter) Input(title, placeholder string, validate func(string) error) (string, error) {
	var input string
	err := runInputPrompt(title, placeholder, validate, &input)
	if err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	return input, nil
}
