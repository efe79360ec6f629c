package quantum

import (
	"math"
	"math/cmplx"
)

// Complex is the amplitude type. Addition and multiplication use the
// built-in operators; conjugation goes through math/cmplx.
type Complex = complex128

// absSq returns |c|².
func absSq(c Complex) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}

func conj(c Complex) Complex {
	return cmplx.Conj(c)
}

// approxEqual compares real and imaginary parts independently.
func approxEqual(a, b Complex, tol float64) bool {
	return math.Abs(real(a)-real(b)) <= tol && math.Abs(imag(a)-imag(b)) <= tol
}

// expi returns e^{iθ}.
func expi(theta float64) Complex {
	return cmplx.Exp(complex(0, theta))
}
