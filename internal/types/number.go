// Package types holds the numeric value helpers shared by the interpreter:
// output formatting and strict parsing of data fields.
package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Notation selects how numbers are written to the output stream.
type Notation uint8

const (
	Scientific Notation = iota // 1.000000e+00
	General                    // 1, 0.5, 1e+20
)

// DefaultPrecision is the number of digits written when none is configured.
const DefaultPrecision = 6

// String returns the notation name used in configuration files.
func (n Notation) String() string {
	switch n {
	case Scientific:
		return "scientific"
	case General:
		return "general"
	default:
		return "unknown"
	}
}

// ParseNotation parses a notation name.
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scientific", "sci", "e":
		return Scientific, nil
	case "general", "g":
		return General, nil
	}
	return Scientific, fmt.Errorf("unknown notation %q", s)
}

// Format describes how a number is rendered.
// The zero Format is scientific notation with zero digits; use NewFormat
// for the defaults.
type Format struct {
	Notation  Notation
	Precision int
}

// NewFormat returns scientific notation with DefaultPrecision digits.
func NewFormat() Format {
	return Format{Notation: Scientific, Precision: DefaultPrecision}
}

// WithPrecision returns f with the precision set to round(p).
// Negative and non-finite values leave f unchanged.
func (f Format) WithPrecision(p float64) Format {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return f
	}
	f.Precision = int(p + 0.5)
	return f
}

// String formats n.
func (f Format) String(n float64) string {
	return string(f.Append(nil, n))
}

// Append appends the formatted n to dst and returns the extended buffer.
func (f Format) Append(dst []byte, n float64) []byte {
	switch {
	case math.IsNaN(n):
		return append(dst, "nan"...)
	case math.IsInf(n, 1):
		return append(dst, "inf"...)
	case math.IsInf(n, -1):
		return append(dst, "-inf"...)
	}

	prec := f.Precision
	if prec < 0 {
		prec = DefaultPrecision
	}
	if f.Notation == General {
		if prec == 0 {
			prec = 1
		}
		return strconv.AppendFloat(dst, n, 'g', prec, 64)
	}
	return strconv.AppendFloat(dst, n, 'e', prec, 64)
}

// ErrSyntax is returned by ParseNum for fields that are not numbers.
var ErrSyntax = errors.New("not a number")

// ParseNum parses a data field as a number (strict parsing).
// Surrounding whitespace is ignored; inf, -inf and nan are accepted.
// Hexadecimal forms and digit separators are rejected.
func ParseNum(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrSyntax
	}

	switch strings.ToLower(s) {
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}

	for i := 0; i < len(s); i++ {
		if !isNumByte(s[i]) {
			return 0, ErrSyntax
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			// Overflow yields ±Inf and underflow yields 0, which is
			// what the data wants.
			return n, nil
		}
		return 0, ErrSyntax
	}
	return n, nil
}

func isNumByte(c byte) bool {
	return isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
