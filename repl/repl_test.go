package repl

import (
	"errors"
	"io"
	"strings"
	"testing"
)

type closableReader struct {
	io.Reader
	closed bool
}

func (r *closableReader) Close() error {
	r.closed = true
	return nil
}

type closableWriter struct {
	strings.Builder
	closed bool
}

func (w *closableWriter) Close() error {
	w.closed = true
	return nil
}

func TestRunEchoesHandlerResults(t *testing.T) {
	in := &closableReader{Reader: strings.NewReader("one\ntwo\n")}
	out := &closableWriter{}
	r := NewRepl(in, out)

	err := r.Run(func(msg string, _ *Repl) (string, error) {
		return "got " + msg, nil
	})
	if err != nil {
		t.Fatalf("Run errored: %v", err)
	}
	if out.String() != "got one\ngot two\n" {
		t.Errorf("output is %q", out.String())
	}
	if in.closed || out.closed {
		t.Error("clean end of input should not close the streams")
	}
}

func TestRunWritesPrompt(t *testing.T) {
	in := &closableReader{Reader: strings.NewReader("hi\n")}
	out := &closableWriter{}
	r := NewRepl(in, out)
	r.Prompt = "> "

	if err := r.Run(func(msg string, _ *Repl) (string, error) { return msg, nil }); err != nil {
		t.Fatalf("Run errored: %v", err)
	}
	if out.String() != "> hi\n> " {
		t.Errorf("output is %q", out.String())
	}
}

func TestRunStopsOnHandlerError(t *testing.T) {
	in := &closableReader{Reader: strings.NewReader("first\nsecond\n")}
	out := &closableWriter{}
	r := NewRepl(in, out)

	seen := 0
	err := r.Run(func(msg string, _ *Repl) (string, error) {
		seen++
		return "", errors.New("stop now")
	})
	if err == nil {
		t.Fatal("Run swallowed the handler error")
	}
	if seen != 1 {
		t.Errorf("handler ran %d times, expected 1", seen)
	}
	if !in.closed || !out.closed {
		t.Error("handler error should close the streams")
	}
}
