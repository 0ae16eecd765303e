package engine

import (
	"context"
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  Bonjour le monde  ", "Bonjour le monde"},
		{"bare fence", "```\nHola\n```", "Hola"},
		{"info string", "```text\nHallo Welt\n```", "Hallo Welt"},
		{"single line fence", "```Ciao```", "Ciao"},
		{"inner backticks kept", "use `go test` here", "use `go test` here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCallLLM_Disabled(t *testing.T) {
	Init(Config{})
	_, err := CallLLM(context.Background(), "", "hi")
	if !errors.Is(err, ErrLLMDisabled) {
		t.Errorf("expected ErrLLMDisabled, got %v", err)
	}
}
