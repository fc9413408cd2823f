package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
		asks  int
	}{
		{"y", "y\n", true, 1},
		{"YES", "YES\n", true, 1},
		{"no", "no\n", false, 1},
		{"N with spaces", "  N  \n", false, 1},
		{"reprompts on garbage", "maybe\n\nyes\n", true, 3},
		{"answer without newline", "y", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			term := NewTerminal(strings.NewReader(tt.input), &out)

			got, err := term.Confirm("Reinstall from scratch?")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.asks, strings.Count(out.String(), "Reinstall from scratch? [y/n]: "))
		})
	}
}

func TestTerminal_Confirm_EOF(t *testing.T) {
	t.Parallel()

	term := NewTerminal(strings.NewReader("maybe\n"), &bytes.Buffer{})

	_, err := term.Confirm("Continue?")

	assert.ErrorIs(t, err, ErrNoInput)
}

func TestTerminal_Line(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("  acme-prod \nsecond\n"), &out)

	first, err := term.Line("Project ID")
	require.NoError(t, err)
	second, err := term.Line("Another")
	require.NoError(t, err)

	assert.Equal(t, "acme-prod", first)
	assert.Equal(t, "second", second)
	assert.Equal(t, "Project ID: Another: ", out.String())
}

func TestTerminal_Line_EOF(t *testing.T) {
	t.Parallel()

	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})

	_, err := term.Line("Project ID")

	assert.ErrorIs(t, err, ErrNoInput)
}

func TestTerminal_Line_BlankAnswer(t *testing.T) {
	t.Parallel()

	term := NewTerminal(strings.NewReader("\n"), &bytes.Buffer{})

	got, err := term.Line("Project ID")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTerminal_InputKeepsReadAheadBytes(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("acme-prod\nq\n"), &out)

	id, err := term.Line("Project ID")
	require.NoError(t, err)
	assert.Equal(t, "acme-prod", id)

	rest, err := io.ReadAll(term.Input())
	require.NoError(t, err)
	assert.Equal(t, "q\n", string(rest))
}

func TestTerminal_InputIsOriginalStreamWhenNothingBuffered(t *testing.T) {
	t.Parallel()
	src := strings.NewReader("y\n")
	term := NewTerminal(src, &bytes.Buffer{})

	assert.Same(t, src, term.Input())

	_, err := term.Confirm("Continue?")
	require.NoError(t, err)
	assert.Same(t, src, term.Input())
}
