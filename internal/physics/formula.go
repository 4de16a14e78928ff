// Package physics implements the electroweak vacuum stability formula
// library: the bounce action, one-loop quantum corrections and the decay
// rate integration, registered as script functions.
package physics

import "math"

// InstantonB returns the bounce action of the Fubini instanton for
// |λ| = lambdaAbs.
func InstantonB(lambdaAbs float64) float64 {
	return 26.3189450695716 / lambdaAbs
}

// HiggsQC returns the Higgs contribution to the quantum correction.
func HiggsQC(lambdaAbs, lnQR float64) float64 {
	return -0.99192944327027 + 2.5*math.Log(lambdaAbs) - 3*lnQR
}

// ScalarQC returns the correction from a real scalar with coupling kappa.
func ScalarQC(kappa, lambdaAbs, lnQR float64) float64 {
	x := kappa / lambdaAbs
	x2 := x * x
	x3 := x * x2
	x4 := x * x3

	if x < 0.7 {
		x5 := x * x4
		x6 := x * x5
		x7 := x * x6
		x8 := x * x7
		x9 := x * x8
		x10 := x * x9
		return -0.239133939224974*x2 + 0.222222222222222*x3 -
			0.134704602106396*x4 + 0.102278606592866*x5 -
			0.0839329261179402*x6 + 0.0715956882048009*x7 -
			0.0625481711576628*x8 + 0.0555697470602515*x9 -
			0.0500042455037409*x10 - 0.333333333333333*x2*lnQR
	}

	return -0.0261559272783723 + 0.0000886704923163256/x4 +
		0.0000962000962000962/x3 + 0.000198412698412698/x2 +
		0.00105820105820106/x + 0.111111111111111*x -
		0.181204187497805*x2 + (-0.0055555555555556+0.166666666666667*x2)*math.Log(x) -
		0.333333333333333*x2*lnQR
}

// FermionQC returns the correction from a Weyl fermion with Yukawa
// coupling y.
func FermionQC(y, lambdaAbs, lnQR float64) float64 {
	x := y * y / lambdaAbs
	x2 := x * x
	x3 := x * x2
	lnTerm := (0.66666666666667*x + 0.333333333333333*x2) * lnQR

	if x < 1.3 {
		x4 := x * x3
		x5 := x * x4
		x6 := x * x5
		x7 := x * x6
		x8 := x * x7
		return 0.64493454511661*x + 0.005114971505109*x2 -
			0.0366953662258276*x3 + 0.00476307962690785*x4 -
			0.000845451274112082*x5 + 0.000168244913551417*x6 -
			0.0000353785958610453*x7 + 7.67709260595572e-6*x8 + lnTerm
	}

	return -0.227732960077634 + 0.00260942760942761/x3 +
		0.00271164021164021/x2 + 0.00820105820105820/x +
		0.53790187962670*x + 0.296728717591129*x2 +
		(-0.06111111111111111-0.3333333333333333*x-0.1666666666666666*x2)*math.Log(x) + lnTerm
}

// GaugeQC returns the correction from a gauge boson with squared coupling
// gSquared.
func GaugeQC(gSquared, lambdaAbs, lnQR float64) float64 {
	x := gSquared / lambdaAbs
	x2 := x * x
	x3 := x * x2
	x4 := x * x3
	lnLambda := 0.5 * math.Log(lambdaAbs)

	if x < 1.1 {
		x5 := x * x4
		x6 := x * x5
		x7 := x * x6
		x8 := x * x7
		return -0.966861032843734 - 1.76813696868318*x + 0.61593151565841*x2 +
			0.127848258241082*x3 - 0.0205690315959429*x4 +
			0.00467728575401191*x5 - 0.00121386963701736*x6 +
			0.000336192073844430*x7 - 0.0000966171446396430*x8 +
			lnLambda + (-0.333333333333333-2*x-x2)*lnQR
	}

	sqrtX := math.Sqrt(x)
	x32 := x * sqrtX
	x52 := x * x32
	x72 := x * x52
	return -0.580011057371274 + 0.000482461693399193/x4 - 0.0000211853167446059/x72 +
		0.000685425685425685/x3 - 0.000271172054330955/x52 + 0.00218253968253968/x2 -
		0.00433875286929528/x32 + 0.0198412698412698/x - 0.138840091817449/sqrtX +
		2.22144146907918*sqrtX - 1.58722512498683*x - 0.210279229160082*x2 +
		(-0.183333333333333+x+0.5*x2)*math.Log(x) +
		0.5*math.Log(x/math.Cosh(8.47412669784234e-6/x72*
			(5+64*x+1024*x2+32768*x3-524288*x4))) +
		lnLambda - (0.333333333333333+2*x+x2)*lnQR
}
