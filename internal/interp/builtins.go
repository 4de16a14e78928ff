package interp

import (
	"github.com/kolkov/elvas/internal/eval"
)

// registerBuiltins adds the functions that need interpreter state.
func (in *Interpreter) registerBuiltins() {
	in.ev.Define("print", eval.Variadic(0), in.print)

	in.ev.Define("continue", 0, func([]float64) (float64, error) {
		in.cont = true
		return 0, nil
	})

	in.ev.Define("break", 0, func([]float64) (float64, error) {
		in.cont = true
		in.brk = true
		return 0, nil
	})

	in.ev.Define("output_precision", 1, func(args []float64) (float64, error) {
		in.format = in.format.WithPrecision(args[0])
		return 0, nil
	})
}

// print writes its arguments joined by the output delimiter and returns
// the last one.
func (in *Interpreter) print(args []float64) (float64, error) {
	delim := in.outputDelim()

	buf := in.buf[:0]
	for i, v := range args {
		if i > 0 {
			buf = append(buf, delim...)
		}
		buf = in.format.Append(buf, v)
	}
	buf = append(buf, '\n')
	in.buf = buf

	if _, err := in.out.Write(buf); err != nil {
		return 0, err
	}
	if len(args) == 0 {
		return 0, nil
	}
	return args[len(args)-1], nil
}

func (in *Interpreter) outputDelim() string {
	if d, ok := in.decls.str(OutputDelim); ok {
		return d
	}
	return in.delim
}
