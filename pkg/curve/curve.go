// Package curve defines the elliptic-curve group contract consumed by the
// rest of this module: scalar field arithmetic, group operations, canonical
// encodings, and the two hash constructions (hash-to-scalar for Fiat-Shamir
// transcripts, point-to-DH-secret for symmetric key derivation) that the
// PVSS and SCRAPE layers build on top of.
//
// Everything above this package treats Scalar and Point as opaque values
// produced and consumed through a Curve; no package outside curve performs
// field or group arithmetic directly.
package curve

import "io"

// Scalar is an element of the prime-order scalar field of a Curve.
type Scalar interface {
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar

	// Invert returns the multiplicative inverse. It is a precondition
	// violation to call Invert on the zero scalar.
	Invert() (Scalar, error)

	IsZero() bool
	Equal(Scalar) bool

	// Bytes returns the fixed-size canonical big-endian encoding.
	Bytes() []byte

	Clone() Scalar
}

// Point is an element of the prime-order cyclic group of a Curve.
type Point interface {
	Add(Point) Point
	ScalarMult(Scalar) Point

	IsIdentity() bool
	Equal(Point) bool

	// Bytes returns the fixed-size canonical compressed encoding.
	Bytes() []byte

	Clone() Point
}

// DhSecret is opaque symmetric key material derived from a Point.
type DhSecret []byte

// Curve is the external ECC primitive contract of spec §6. One concrete
// instance (Secp256k1) is provided by this package; nothing above this
// layer depends on which curve backs it.
type Curve interface {
	Name() string

	NewScalar() Scalar
	ZeroScalar() Scalar
	OneScalar() Scalar
	RandomScalar(rand io.Reader) (Scalar, error)
	ScalarFromUint64(n uint64) Scalar
	ScalarFromBytes(b []byte) (Scalar, error)

	Generator() Point
	Identity() Point
	PointFromBytes(b []byte) (Point, error)

	// HashToScalar is the Fiat-Shamir transcript hash: it binds the
	// canonical encoding of every point, in order, into one challenge
	// scalar.
	HashToScalar(points ...Point) Scalar

	// PointToDhSecret derives symmetric key material from a group element.
	PointToDhSecret(p Point) DhSecret

	ScalarSize() int
	PointSize() int
}

// PointFromSecret computes G .* s, the public key matching a private scalar.
func PointFromSecret(group Curve, s Scalar) Point {
	return group.Generator().ScalarMult(s)
}

// KeyFromNum maps a small positive integer (a 1-based participant index) to
// a scalar, the convention used throughout PVSS/SCRAPE for evaluation
// points and Lagrange coefficients.
func KeyFromNum(group Curve, n uint64) Scalar {
	return group.ScalarFromUint64(n)
}

// KeyInverse returns the multiplicative inverse of s. Precondition: s != 0.
func KeyInverse(s Scalar) (Scalar, error) {
	return s.Invert()
}

// KeyGenerate draws a uniformly random scalar from rand.
func KeyGenerate(group Curve, rand io.Reader) (Scalar, error) {
	return group.RandomScalar(rand)
}

// MulPowerAndSum computes Σ points[j] .* x^j, evaluating a commitment
// polynomial in the exponent term by term with a running power of x that is
// multiplied by x after each term (spec §4.4's createXi).
func MulPowerAndSum(group Curve, points []Point, x Scalar) Point {
	result := group.Identity()
	xPower := group.OneScalar()
	for _, p := range points {
		result = result.Add(p.ScalarMult(xPower))
		xPower = xPower.Mul(x)
	}
	return result
}

// MulAndSum computes Σ points[i] .* scalars[i]. Panics if the slices differ
// in length, a programmer error rather than recoverable data.
func MulAndSum(group Curve, points []Point, scalars []Scalar) Point {
	if len(points) != len(scalars) {
		panic("curve: MulAndSum: mismatched slice lengths")
	}
	result := group.Identity()
	for i, p := range points {
		result = result.Add(p.ScalarMult(scalars[i]))
	}
	return result
}
