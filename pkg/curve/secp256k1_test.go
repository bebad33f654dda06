package curve_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/pvss/pkg/curve"
)

func TestScalarArithmetic(t *testing.T) {
	group := curve.Secp256k1{}

	a, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)
	b, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)

	t.Run("add is commutative", func(t *testing.T) {
		assert.True(t, a.Add(b).Equal(b.Add(a)))
	})

	t.Run("sub then add round-trips", func(t *testing.T) {
		assert.True(t, a.Add(b).Sub(b).Equal(a))
	})

	t.Run("mul by inverse is one", func(t *testing.T) {
		aInv, err := a.Invert()
		require.NoError(t, err)
		assert.True(t, a.Mul(aInv).Equal(group.OneScalar()))
	})

	t.Run("zero has no inverse", func(t *testing.T) {
		_, err := group.ZeroScalar().Invert()
		assert.Error(t, err)
	})

	t.Run("bytes round-trip", func(t *testing.T) {
		b := a.Bytes()
		assert.Len(t, b, group.ScalarSize())
		decoded, err := group.ScalarFromBytes(b)
		require.NoError(t, err)
		assert.True(t, a.Equal(decoded))
	})
}

func TestPointArithmetic(t *testing.T) {
	group := curve.Secp256k1{}

	five := group.ScalarFromUint64(5)
	three := group.ScalarFromUint64(3)
	eight := group.ScalarFromUint64(8)

	p5 := curve.PointFromSecret(group, five)
	p3 := curve.PointFromSecret(group, three)
	p8 := curve.PointFromSecret(group, eight)

	t.Run("scalar mult distributes over addition", func(t *testing.T) {
		assert.True(t, p5.Add(p3).Equal(p8))
	})

	t.Run("identity is additive identity", func(t *testing.T) {
		assert.True(t, p5.Add(group.Identity()).Equal(p5))
	})

	t.Run("generator times zero is identity", func(t *testing.T) {
		assert.True(t, group.Generator().ScalarMult(group.ZeroScalar()).IsIdentity())
	})

	t.Run("bytes round-trip", func(t *testing.T) {
		b := p5.Bytes()
		assert.Len(t, b, group.PointSize())
		decoded, err := group.PointFromBytes(b)
		require.NoError(t, err)
		assert.True(t, p5.Equal(decoded))
	})
}

func TestHashToScalarIsDeterministicAndBinding(t *testing.T) {
	group := curve.Secp256k1{}
	p1 := curve.PointFromSecret(group, group.ScalarFromUint64(1))
	p2 := curve.PointFromSecret(group, group.ScalarFromUint64(2))

	c1 := group.HashToScalar(p1, p2)
	c2 := group.HashToScalar(p1, p2)
	assert.True(t, c1.Equal(c2), "hash-to-scalar must be deterministic")

	c3 := group.HashToScalar(p2, p1)
	assert.False(t, c1.Equal(c3), "hash-to-scalar must bind point order")
}

func TestPointToDhSecretIsDeterministic(t *testing.T) {
	group := curve.Secp256k1{}
	p := curve.PointFromSecret(group, group.ScalarFromUint64(42))

	s1 := group.PointToDhSecret(p)
	s2 := group.PointToDhSecret(p)
	assert.Equal(t, s1, s2)
	assert.Len(t, s1, 32)
}

func TestMulPowerAndSum(t *testing.T) {
	group := curve.Secp256k1{}
	// points = [G.*1, G.*2, G.*3]; evaluated at x=2: 1 + 2*2 + 3*4 = 17
	points := []curve.Point{
		curve.PointFromSecret(group, group.ScalarFromUint64(1)),
		curve.PointFromSecret(group, group.ScalarFromUint64(2)),
		curve.PointFromSecret(group, group.ScalarFromUint64(3)),
	}
	got := curve.MulPowerAndSum(group, points, group.ScalarFromUint64(2))
	want := curve.PointFromSecret(group, group.ScalarFromUint64(17))
	assert.True(t, got.Equal(want))
}

func TestMulAndSum(t *testing.T) {
	group := curve.Secp256k1{}
	points := []curve.Point{
		curve.PointFromSecret(group, group.ScalarFromUint64(2)),
		curve.PointFromSecret(group, group.ScalarFromUint64(3)),
	}
	scalars := []curve.Scalar{group.ScalarFromUint64(5), group.ScalarFromUint64(7)}
	got := curve.MulAndSum(group, points, scalars)
	// 2*5 + 3*7 = 31
	want := curve.PointFromSecret(group, group.ScalarFromUint64(31))
	assert.True(t, got.Equal(want))
}
