package runtime

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// MaxLineSize bounds the length of one script line.
const MaxLineSize = 1 << 20

// Inputs reads a list of files one after another as a single stream.
type Inputs struct {
	io.Reader
	files []*os.File
}

// OpenInputs opens paths in order. With no paths, or for the path "-",
// stdin is read instead.
func OpenInputs(stdin io.Reader, paths ...string) (*Inputs, error) {
	if len(paths) == 0 {
		return &Inputs{Reader: stdin}, nil
	}

	in := &Inputs{}
	readers := make([]io.Reader, 0, len(paths))
	for _, p := range paths {
		if p == "-" {
			readers = append(readers, stdin)
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			_ = in.Close()
			return nil, err
		}
		in.files = append(in.files, f)
		readers = append(readers, &terminated{r: f})
	}
	in.Reader = io.MultiReader(readers...)
	return in, nil
}

// Close closes every opened file.
func (in *Inputs) Close() error {
	var errs []error
	for _, f := range in.files {
		errs = append(errs, f.Close())
	}
	in.files = nil
	return errors.Join(errs...)
}

// terminated appends a line break to a non-empty stream that does not end
// with one, so the last line of a file never merges with the first line of
// the next.
type terminated struct {
	r       io.Reader
	seen    bool
	last    byte
	pending bool
	done    bool
}

func (t *terminated) Read(p []byte) (int, error) {
	switch {
	case len(p) == 0:
		return 0, nil
	case t.done:
		return 0, io.EOF
	case t.pending:
		t.done = true
		p[0] = '\n'
		return 1, io.EOF
	}

	n, err := t.r.Read(p)
	if n > 0 {
		t.seen = true
		t.last = p[n-1]
	}
	if err != io.EOF {
		return n, err
	}
	if !t.seen || t.last == '\n' {
		t.done = true
		return n, io.EOF
	}
	if n < len(p) {
		p[n] = '\n'
		t.done = true
		return n + 1, io.EOF
	}
	t.pending = true
	return n, nil
}

// NewLineScanner returns a line scanner that accepts lines up to
// MaxLineSize bytes.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return sc
}

// Output is a buffered output destination.
type Output struct {
	*bufio.Writer
	file *os.File
}

// CreateOutput truncates or creates the file at path. An empty path writes
// to fallback instead.
func CreateOutput(path string, fallback io.Writer) (*Output, error) {
	if path == "" {
		return &Output{Writer: bufio.NewWriter(fallback)}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &Output{Writer: bufio.NewWriter(f), file: f}, nil
}

// Close flushes buffered output and closes the file, if one was created.
func (o *Output) Close() error {
	err := o.Flush()
	if o.file != nil {
		err = errors.Join(err, o.file.Close())
		o.file = nil
	}
	return err
}
