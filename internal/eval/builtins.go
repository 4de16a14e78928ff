package eval

import (
	"math"

	"github.com/kolkov/elvas/internal/ast"
)

func unary(f func(float64) float64) ast.Func {
	return func(args []float64) (float64, error) {
		return f(args[0]), nil
	}
}

func registerBuiltins(e *Evaluator) {
	for name, f := range map[string]func(float64) float64{
		"sqrt":  math.Sqrt,
		"exp":   math.Exp,
		"log":   math.Log,
		"log10": math.Log10,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"abs":   math.Abs,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
	} {
		e.Define(name, 1, unary(f))
	}

	e.Define("pow", 2, func(args []float64) (float64, error) {
		return math.Pow(args[0], args[1]), nil
	})

	e.Define("max", Variadic(1), func(args []float64) (float64, error) {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Max(m, v)
		}
		return m, nil
	})

	e.Define("min", Variadic(1), func(args []float64) (float64, error) {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Min(m, v)
		}
		return m, nil
	})

	// eval(a, b, ..., z) evaluates every argument and yields the last.
	e.Define("eval", Variadic(1), func(args []float64) (float64, error) {
		return args[len(args)-1], nil
	})

	e.Define("exit", 0, func([]float64) (float64, error) {
		return 0, ErrExit
	})
}
