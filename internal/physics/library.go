package physics

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/kolkov/elvas/internal/ast"
	"github.com/kolkov/elvas/internal/numeric"
)

// Names of the script constants the library reads.
const (
	HiggsQuarticCoupling = "HIGGS_QUARTIC_COUPLING"
	LnQR                 = "LN_QR"
	LnRinv               = "LN_RINV"
)

// NInteg is the number of sample points of the decay rate integration.
const NInteg = 111

var (
	ErrTooFewPoints  = errors.New("data size is too small")
	ErrInvalidRegion = errors.New("invalid region of integration")
	ErrNotFound      = errors.New("corresponding lnRinv is not found")
)

// Host is the function registry the library installs itself into.
type Host interface {
	Define(name string, arity int, fn ast.Func)
	Value(name string) (float64, error)
}

// Library holds the tables saved by a script between calls.
type Library struct {
	host     Host
	lnPhiC   []numeric.Point // X = ln φ_C, Y = LN_RINV
	dlnGamma []numeric.Point // X = LN_RINV, Y = d ln Γ / d ln R⁻¹
}

// Register installs the library functions into h.
func Register(h Host) *Library {
	l := &Library{host: h}

	h.Define("InstantonB", 0, func([]float64) (float64, error) {
		lam, err := l.lambdaAbs()
		return InstantonB(lam), err
	})
	h.Define("HiggsQC", 0, func([]float64) (float64, error) {
		lam, lnQR, err := l.couplings()
		return HiggsQC(lam, lnQR), err
	})
	h.Define("ScalarQC", 1, l.correction(ScalarQC))
	h.Define("FermionQC", 1, l.correction(FermionQC))
	h.Define("GaugeQC", 1, l.correction(GaugeQC))

	h.Define("initialize", 0, func([]float64) (float64, error) {
		l.Reset()
		return 0, nil
	})
	h.Define("save_phiC", 0, func([]float64) (float64, error) {
		return 0, l.savePhiC()
	})
	h.Define("save_dlngamma_dRinv", 1, func(args []float64) (float64, error) {
		lnRinv, err := h.Value(LnRinv)
		if err != nil {
			return 0, err
		}
		l.dlnGamma = append(l.dlnGamma, numeric.Point{X: lnRinv, Y: args[0]})
		return 0, nil
	})
	h.Define("is_data_enough", 0, func([]float64) (float64, error) {
		if len(l.dlnGamma) >= 3 {
			return 1, nil
		}
		return 0, nil
	})
	h.Define("get_max_lnRinv", 1, func(args []float64) (float64, error) {
		return l.maxLnRinv(args[0])
	})
	h.Define("get_min_lnRinv", 1, func(args []float64) (float64, error) {
		return l.minLnRinv(args[0])
	})
	h.Define("get_lngamma", 2, func(args []float64) (float64, error) {
		return LnGamma(l.dlnGamma, args[0], args[1])
	})

	return l
}

// Reset clears the saved tables.
func (l *Library) Reset() {
	l.lnPhiC = l.lnPhiC[:0]
	l.dlnGamma = l.dlnGamma[:0]
}

// Saved returns the number of saved φ_C and decay rate points.
func (l *Library) Saved() (phiC, dlnGamma int) {
	return len(l.lnPhiC), len(l.dlnGamma)
}

// lambdaAbs reads |λ|. The coupling is negative in the unstable region.
func (l *Library) lambdaAbs() (float64, error) {
	lam, err := l.host.Value(HiggsQuarticCoupling)
	return -lam, err
}

func (l *Library) couplings() (lambdaAbs, lnQR float64, err error) {
	if lambdaAbs, err = l.lambdaAbs(); err != nil {
		return 0, 0, err
	}
	lnQR, err = l.host.Value(LnQR)
	return lambdaAbs, lnQR, err
}

func (l *Library) correction(f func(c, lambdaAbs, lnQR float64) float64) ast.Func {
	return func(args []float64) (float64, error) {
		lam, lnQR, err := l.couplings()
		if err != nil {
			return 0, err
		}
		return f(args[0], lam, lnQR), nil
	}
}

func (l *Library) savePhiC() error {
	lam, err := l.lambdaAbs()
	if err != nil {
		return err
	}
	lnRinv, err := l.host.Value(LnRinv)
	if err != nil {
		return err
	}
	l.lnPhiC = append(l.lnPhiC, numeric.Point{
		X: lnRinv + 0.5*math.Log(8) - 0.5*math.Log(lam),
		Y: lnRinv,
	})
	return nil
}

// maxLnRinv bounds the integration region from above: the largest saved
// LN_RINV, the LN_RINV where ln φ_C reaches x, and x itself.
func (l *Library) maxLnRinv(x float64) (float64, error) {
	if len(l.dlnGamma) < 3 {
		return 0, fmt.Errorf("get_max_lnRinv: %w", ErrTooFewPoints)
	}
	bound := l.dlnGamma[0].X
	for _, p := range l.dlnGamma[1:] {
		bound = math.Max(bound, p.X)
	}
	if v, err := LnRinvAt(x, l.lnPhiC); err == nil {
		bound = math.Min(bound, v)
	}
	return math.Min(bound, x), nil
}

// minLnRinv is the lower counterpart of maxLnRinv.
func (l *Library) minLnRinv(x float64) (float64, error) {
	if len(l.dlnGamma) < 3 {
		return 0, fmt.Errorf("get_min_lnRinv: %w", ErrTooFewPoints)
	}
	bound := l.dlnGamma[0].X
	for _, p := range l.dlnGamma[1:] {
		bound = math.Min(bound, p.X)
	}
	if v, err := LnRinvAt(x, l.lnPhiC); err == nil {
		bound = math.Max(bound, v)
	}
	return math.Max(bound, x), nil
}

// LnRinvAt finds the LN_RINV at which ln φ_C equals lnPhiC. table holds
// (ln φ_C, LN_RINV) pairs; only the part where ln φ_C increases with
// LN_RINV is searched.
func LnRinvAt(lnPhiC float64, table []numeric.Point) (float64, error) {
	if len(table) < 3 {
		return 0, fmt.Errorf("lnPhiC2LnRinv: %w", ErrTooFewPoints)
	}

	t := slices.Clone(table)
	slices.SortStableFunc(t, func(a, b numeric.Point) int { return cmp.Compare(a.Y, b.Y) })

	i := 0
	for i < len(t)-1 && t[i].X >= t[i+1].X {
		i++
	}
	if i == len(t)-1 {
		return 0, fmt.Errorf("lnPhiC2LnRinv: %w (decreasing lnRinv)", ErrNotFound)
	}
	if lnPhiC < t[i].X || t[len(t)-1].X < lnPhiC {
		return 0, fmt.Errorf("lnPhiC2LnRinv: %w (out of range)", ErrNotFound)
	}
	return numeric.InterpolateL2(t[i:], lnPhiC)
}

// LnGamma returns ln ∫ exp(f) over [beg, end], where f is the quadratic
// interpolation of table, a set of (LN_RINV, d ln Γ / d ln R⁻¹) points.
func LnGamma(table []numeric.Point, beg, end float64) (float64, error) {
	if len(table) < 3 {
		return 0, fmt.Errorf("getLnGamma: %w", ErrTooFewPoints)
	}
	if beg >= end {
		return 0, fmt.Errorf("getLnGamma: %w", ErrInvalidRegion)
	}

	t := slices.Clone(table)
	numeric.SortByX(t)

	peak := t[0].Y
	for _, p := range t[1:] {
		peak = math.Max(peak, p.Y)
	}

	dx := (end - beg) / (NInteg - 1)
	ys := make([]float64, NInteg)
	for i := range ys {
		v, err := numeric.InterpolateL2(t, beg+dx*float64(i))
		if err != nil {
			return 0, fmt.Errorf("getLnGamma: %w", err)
		}
		ys[i] = math.Exp(v - peak)
	}

	integral, err := numeric.Simpson(ys, dx, numeric.SimpsonLast)
	if err != nil {
		return 0, err
	}
	return peak + math.Log(integral), nil
}
