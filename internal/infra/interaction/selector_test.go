package interaction

import (
	"errors"
	"testing"
)

func TestHuhPrompterInputUsesRunner(t *testing.T) {
	orig := runInputPrompt
	t.Cleanup(func() { runInputPrompt = orig })

	var gotTitle, gotPlaceholder string
	var gotValidate func(string) error
	runInputPrompt = func(title, placeholder string, validate func(string) error, input *string) error {
		gotTitle = title
		gotPlaceholder = placeholder
		gotValidate = validate
		*input = "otlp-demo"
		return nil
	}

	validate := func(v string) error {
		if v == "" {
			return errors.New("required")
		}
		return nil
	}
	got, err := (HuhPrompter{}).Input("Worker name", "otlp-demo", validate)
	if err != nil {
		t.Fatalf("Input() error = %v", err)
	}
	if got != "otlp-demo" {
		t.Fatalf("Input() = %q, want %q", got, "otlp-demo")
	}
	if gotTitle != "Worker name" || gotPlaceholder != "otlp-demo" {
		t.Fatalf("title = %q placeholder = %q", gotTitle, gotPlaceholder)
	}
	if gotValidate == nil || gotValidate("") == nil {
		t.Fatalf("validate func was not forwarded")
	}
}

func TestHuhPrompterInputWrapsError(t *testing.T) {
	orig := runInputPrompt
	t.Cleanup(func() { runInputPrompt = orig })
	runInputPrompt = func(string, string, func(string) error, *string) error {
		return errors.New("tty unavailable")
	}

	_, err := (HuhPrompter{}).Input("Stack name", "", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "prompt input: tty unavailable" {
		t.Fatalf("unexpected error: %v", err)
	}
}
