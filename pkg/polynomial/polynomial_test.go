package polynomial_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/pvss/pkg/curve"
	"github.com/luxfi/pvss/pkg/party"
	"github.com/luxfi/pvss/pkg/polynomial"
)

func TestGenerateDegreeZero(t *testing.T) {
	group := curve.Secp256k1{}
	p, err := polynomial.Generate(group, 0, rand.Reader)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Degree())
	assert.Len(t, p.Coefficients(), 1)

	// A constant polynomial evaluates to a0 everywhere.
	for i := uint64(1); i <= 5; i++ {
		assert.True(t, p.Evaluate(group.ScalarFromUint64(i)).Equal(p.AtZero()))
	}
}

func TestEvaluateMatchesDirectSum(t *testing.T) {
	group := curve.Secp256k1{}
	p, err := polynomial.Generate(group, 3, rand.Reader)
	require.NoError(t, err)

	x := group.ScalarFromUint64(7)
	coeffs := p.Coefficients()

	want := group.ZeroScalar()
	xPower := group.OneScalar()
	for _, a := range coeffs {
		want = want.Add(a.Mul(xPower))
		xPower = xPower.Mul(x)
	}

	assert.True(t, p.Evaluate(x).Equal(want))
}

func TestAtZeroMatchesEvaluateAtZero(t *testing.T) {
	group := curve.Secp256k1{}
	p, err := polynomial.Generate(group, 5, rand.Reader)
	require.NoError(t, err)
	assert.True(t, p.AtZero().Equal(p.Evaluate(group.ZeroScalar())))
}

func TestFromSecretFixesConstantTerm(t *testing.T) {
	group := curve.Secp256k1{}
	secret, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)

	p, err := polynomial.FromSecret(group, 2, secret, rand.Reader)
	require.NoError(t, err)
	assert.True(t, p.AtZero().Equal(secret))
}

func TestDestroyZeroesCoefficients(t *testing.T) {
	group := curve.Secp256k1{}
	p, err := polynomial.Generate(group, 4, rand.Reader)
	require.NoError(t, err)

	p.Destroy()
	for _, c := range p.Coefficients() {
		assert.True(t, c.IsZero())
	}
}

func TestLagrangeSumsToOne(t *testing.T) {
	group := curve.Secp256k1{}

	n := 10
	allIDs := party.Sequential(n)
	coefsEven, err := polynomial.Lagrange(group, allIDs)
	require.NoError(t, err)
	coefsOdd, err := polynomial.Lagrange(group, allIDs[:n-1])
	require.NoError(t, err)

	sumEven := group.ZeroScalar()
	for _, c := range coefsEven {
		sumEven = sumEven.Add(c)
	}
	sumOdd := group.ZeroScalar()
	for _, c := range coefsOdd {
		sumOdd = sumOdd.Add(c)
	}

	assert.True(t, sumEven.Equal(group.OneScalar()))
	assert.True(t, sumOdd.Equal(group.OneScalar()))
}

func TestLagrangeInterpolatesPolynomialAtZero(t *testing.T) {
	group := curve.Secp256k1{}
	threshold := 4
	p, err := polynomial.Generate(group, threshold-1, rand.Reader)
	require.NoError(t, err)

	ids := party.Sequential(threshold)
	coeffs, err := polynomial.Lagrange(group, ids)
	require.NoError(t, err)

	recovered := group.ZeroScalar()
	for _, id := range ids {
		x, err := id.Scalar(group)
		require.NoError(t, err)
		recovered = recovered.Add(p.Evaluate(x).Mul(coeffs[id]))
	}

	assert.True(t, recovered.Equal(p.AtZero()))
}

func TestLagrangeRejectsDuplicateIDs(t *testing.T) {
	group := curve.Secp256k1{}
	ids := party.IDSlice{party.NewID(1), party.NewID(1)}
	_, err := polynomial.Lagrange(group, ids)
	assert.Error(t, err)
}
