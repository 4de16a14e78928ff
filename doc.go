// Package elvas runs ELVAS scripts: line-oriented numeric programs that
// drive electroweak vacuum stability calculations over tabulated datasets.
//
// A script is split into sections. GENERAL declares delimiters and variable
// names, INITIALIZE runs statements once, DATASET blocks carry records, and
// the BEGIN_ROUTINE, MAIN_ROUTINE and END_ROUTINE statements are replayed
// around each dataset and record. FINALIZE runs after the last dataset.
//
// # Quick Start
//
//	out, err := elvas.RunString(`
//	[GENERAL]
//	RECORD_DELIM = " "
//	RECORD_VARS = {x, y}
//	[MAIN_ROUTINE]
//	print(x + y)
//	[DATASET]
//	1 2
//	`, nil)
//
// # Host Functions
//
// The physics library (bounce action, quantum corrections, decay rate
// integration) is registered by default. Further functions are added with
// [Script.Define] or [Config.Functions]:
//
//	s, _ := elvas.New(os.Stdout, nil)
//	s.Define("twice", 1, func(args []float64) (float64, error) {
//	    return 2 * args[0], nil
//	})
//	err := s.Run(script)
//
// # Configuration
//
// [Config] controls the output delimiter, number notation and precision.
// It can be read from YAML with [LoadConfig].
//
// # Error Handling
//
// Failures inside a script are returned as [*ScriptError], which carries the
// line number and source text and unwraps to one of the sentinel kinds
// ([ErrUndefinedSymbol], [ErrDataFormat], ...). A script that calls exit()
// ends without error.
//
// # Interactive Mode
//
// [Session] evaluates one statement per line and prints its syntax tree and
// value; [Interactive] drives a Session from a reader.
package elvas
