package prompt_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"passwd/internal/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unix newline", "hunter2\nignored\n", "hunter2"},
		{"windows newline", "hunter2\r\n", "hunter2"},
		{"no newline", "hunter2", "hunter2"},
		{"keeps inner spaces", "  correct horse  \n", "  correct horse  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prompt.ReadLine(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLine_EmptyInput(t *testing.T) {
	_, err := prompt.ReadLine(strings.NewReader(""))
	assert.ErrorIs(t, err, prompt.ErrNoInput)
}

func TestTerminal_NonTerminalReadsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(path, []byte("piped secret\n"), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out bytes.Buffer
	got, err := prompt.NewTerminal(f, &out).Secret(context.Background(), "Master password: ")
	require.NoError(t, err)

	assert.Equal(t, "piped secret", got)
	assert.Empty(t, out.String(), "no label is shown when input is not a terminal")
}

func TestTerminal_CancelledWhileWaiting(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err = prompt.NewTerminal(r, &bytes.Buffer{}).Secret(ctx, "Master password: ")
	assert.ErrorIs(t, err, context.Canceled)
}
