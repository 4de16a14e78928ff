// Package cli implements the elvas command line: flag parsing, the banner,
// logging and profiling setup, and the interactive line editor.
package cli
