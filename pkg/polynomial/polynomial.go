// Package polynomial implements random polynomial generation and
// evaluation over a Curve's scalar field (spec §4.1), and the Lagrange
// coefficients used to interpolate a secret in the exponent (spec §4.3's
// recover and §4.5's recover).
package polynomial

import (
	"fmt"
	"io"

	"github.com/luxfi/pvss/pkg/curve"
	"github.com/luxfi/pvss/pkg/party"
)

// Polynomial is a finite sequence of scalar coefficients [a0, a1, ..., ak]
// of degree k = len(coeffs)-1.
type Polynomial struct {
	group  curve.Curve
	coeffs []curve.Scalar
}

// Generate produces a random polynomial of the given degree; the
// coefficient at index 0 (the constant term) is itself uniformly random and
// is the shared secret. degree == 0 yields a single-coefficient constant
// polynomial (threshold 1).
func Generate(group curve.Curve, degree int, rand io.Reader) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("polynomial: degree must be non-negative, got %d", degree)
	}
	coeffs := make([]curve.Scalar, degree+1)
	for i := range coeffs {
		s, err := group.RandomScalar(rand)
		if err != nil {
			return nil, fmt.Errorf("polynomial: failed to sample coefficient %d: %w", i, err)
		}
		coeffs[i] = s
	}
	return &Polynomial{group: group, coeffs: coeffs}, nil
}

// FromSecret produces a random polynomial of the given degree whose
// constant term is fixed to secret, used when the dealer needs the
// evaluation-at-zero to equal a pre-chosen value.
func FromSecret(group curve.Curve, degree int, secret curve.Scalar, rand io.Reader) (*Polynomial, error) {
	p, err := Generate(group, degree, rand)
	if err != nil {
		return nil, err
	}
	p.coeffs[0] = secret.Clone()
	return p, nil
}

// Degree returns k, the polynomial's degree.
func (p *Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// Coefficients returns the commitment-polynomial coefficients in order
// [a0, a1, ..., ak]. Callers must not mutate the returned scalars.
func (p *Polynomial) Coefficients() []curve.Scalar {
	return p.coeffs
}

// Evaluate computes p(x) = Σ a_i x^i via Horner's scheme, constant in the
// coefficient ordering.
func (p *Polynomial) Evaluate(x curve.Scalar) curve.Scalar {
	result := p.group.ZeroScalar()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coeffs[i])
	}
	return result
}

// AtZero returns a0, the constant term / shared secret.
func (p *Polynomial) AtZero() curve.Scalar {
	return p.coeffs[0]
}

// Destroy overwrites the polynomial's coefficients with the zero scalar.
// Escrow values SHOULD call this once their commitments and shares have
// been produced (spec §5's resource discipline); the public secret point
// itself is non-sensitive and is unaffected.
func (p *Polynomial) Destroy() {
	zero := p.group.ZeroScalar()
	for i := range p.coeffs {
		p.coeffs[i] = zero
	}
}

// Lagrange computes the Lagrange coefficients λ_i = Π_{j≠i} id_j/(id_j-id_i)
// for interpolation at x=0, one per id in ids. Duplicate ids produce a
// division by zero; callers must deduplicate (spec §4.3's tie-break rule).
func Lagrange(group curve.Curve, ids party.IDSlice) (map[party.ID]curve.Scalar, error) {
	points := make(map[party.ID]curve.Scalar, len(ids))
	for _, id := range ids {
		x, err := id.Scalar(group)
		if err != nil {
			return nil, err
		}
		points[id] = x
	}

	coeffs := make(map[party.ID]curve.Scalar, len(ids))
	for ii, i := range ids {
		xi := points[i]
		num := group.OneScalar()
		den := group.OneScalar()
		for jj, j := range ids {
			if jj == ii {
				continue
			}
			xj := points[j]
			num = num.Mul(xj)
			den = den.Mul(xj.Sub(xi))
		}
		denInv, err := den.Invert()
		if err != nil {
			return nil, fmt.Errorf("polynomial: lagrange: duplicate or degenerate ids: %w", err)
		}
		coeffs[i] = num.Mul(denInv)
	}
	return coeffs, nil
}
