package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/sahilm/fuzzy"

	"github.com/kolkov/elvas"
	"github.com/kolkov/elvas/internal/log"
)

const historyFile = ".elvas_history"

var headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

// repl runs an interactive session on the terminal with line editing,
// history and name completion.
func repl(ctx context.Context, w io.Writer, cfg *elvas.Config) error {
	ss, err := elvas.NewSession(w, cfg)
	if err != nil {
		return err
	}
	ss.Heading = func(s string) string { return headingStyle.Render(s) }

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(completer(ss.Script().Names))

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for ctx.Err() == nil {
		line, err := ln.Prompt(elvas.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if line != "" {
			ln.AppendHistory(line)
		}

		if err := ss.Exec(line); err != nil {
			if errors.Is(err, elvas.ErrExit) {
				return nil
			}
			return err
		}
	}
	log.Debug("session canceled", slog.Any("error", ctx.Err()))
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

// completer completes the name under the cursor against the names the
// script currently defines, best fuzzy match first.
func completer(names func() []string) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		start := pos
		for start > 0 && isNameByte(line[start-1]) {
			start--
		}
		word := line[start:pos]
		if word == "" {
			return line[:pos], nil, line[pos:]
		}

		matches := fuzzy.Find(word, names())
		out := make([]string, len(matches))
		for i, m := range matches {
			out[i] = m.Str
		}
		return line[:start], out, line[pos:]
	}
}

func isNameByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
