package curve

import (
	"crypto/subtle"
	"fmt"
	"hash"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/hkdf"
)

// Secp256k1 is the Curve implementation backing every component in this
// module, matching the teacher's curve.Secp256k1{} zero-value struct
// (protocols/lss/dealer/dealer_test.go, pkg/math/polynomial/lagrange_test.go).
type Secp256k1 struct{}

var _ Curve = Secp256k1{}

func (Secp256k1) Name() string { return "secp256k1" }

func (Secp256k1) ScalarSize() int { return 32 }

func (Secp256k1) PointSize() int { return 33 }

func (Secp256k1) NewScalar() Scalar {
	return &secp256k1Scalar{}
}

func (Secp256k1) ZeroScalar() Scalar {
	return &secp256k1Scalar{}
}

func (Secp256k1) OneScalar() Scalar {
	s := new(secp256k1.ModNScalar)
	s.SetInt(1)
	return &secp256k1Scalar{s: *s}
}

func (c Secp256k1) RandomScalar(rand io.Reader) (Scalar, error) {
	var buf [48]byte // oversample to keep the mod-n reduction bias negligible
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return nil, fmt.Errorf("curve: failed to read randomness: %w", err)
	}
	nat := new(saferith.Nat).SetBytes(buf[:])
	return c.scalarFromNat(nat), nil
}

func (c Secp256k1) ScalarFromUint64(n uint64) Scalar {
	nat := new(saferith.Nat).SetUint64(n)
	return c.scalarFromNat(nat)
}

// scalarFromNat reduces an arbitrary-width natural number modulo the group
// order, matching the teacher's NewScalar().SetNat(nat) convention.
func (Secp256k1) scalarFromNat(nat *saferith.Nat) Scalar {
	order := saferith.ModulusFromBytes(secp256k1.Params().N.Bytes())
	b := new(saferith.Nat).Mod(nat, order).Bytes()
	var s secp256k1.ModNScalar
	s.SetByteSlice(b) // already reduced, so at most 32 bytes and below N
	return &secp256k1Scalar{s: s}
}

func (Secp256k1) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("curve: scalar must be 32 bytes, got %d", len(b))
	}
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	if overflow {
		return nil, fmt.Errorf("curve: scalar encoding exceeds group order")
	}
	return &secp256k1Scalar{s: s}, nil
}

func (Secp256k1) Generator() Point {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &result)
	result.ToAffine()
	return &secp256k1Point{p: result}
}

func (Secp256k1) Identity() Point {
	return &secp256k1Point{} // zero-value JacobianPoint (Z == 0) is the point at infinity
}

func (Secp256k1) PointFromBytes(b []byte) (Point, error) {
	if len(b) != 33 {
		return nil, fmt.Errorf("curve: point must be 33 bytes, got %d", len(b))
	}
	pk, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("curve: invalid point encoding: %w", err)
	}
	var affine secp256k1.JacobianPoint
	pk.AsJacobian(&affine)
	return &secp256k1Point{p: affine}, nil
}

// HashToScalar binds the canonical encoding of every point, in order, into
// one Fiat-Shamir challenge scalar using BLAKE3 as the transcript hash.
func (c Secp256k1) HashToScalar(points ...Point) Scalar {
	h := blake3.New()
	for _, p := range points {
		b := p.Bytes()
		_, _ = h.Write(b)
	}
	digest := h.Sum(nil)
	nat := new(saferith.Nat).SetBytes(digest)
	return c.scalarFromNat(nat)
}

// PointToDhSecret derives 32 bytes of symmetric key material from a group
// element via HKDF over BLAKE3, domain-separated from HashToScalar's use of
// the same primitive.
func (Secp256k1) PointToDhSecret(p Point) DhSecret {
	r := hkdf.New(func() hash.Hash { return blake3.New() }, p.Bytes(), nil, []byte("pvss/dh-secret"))
	out := make([]byte, 32)
	if _, err := io.ReadFull(r, out); err != nil {
		panic("curve: hkdf read failed: " + err.Error())
	}
	return out
}

type secp256k1Scalar struct {
	s secp256k1.ModNScalar
}

func (s *secp256k1Scalar) Add(other Scalar) Scalar {
	o := other.(*secp256k1Scalar)
	var r secp256k1.ModNScalar
	r.Add2(&s.s, &o.s)
	return &secp256k1Scalar{s: r}
}

func (s *secp256k1Scalar) Sub(other Scalar) Scalar {
	o := other.(*secp256k1Scalar)
	var neg secp256k1.ModNScalar
	neg.NegateVal(&o.s)
	var r secp256k1.ModNScalar
	r.Add2(&s.s, &neg)
	return &secp256k1Scalar{s: r}
}

func (s *secp256k1Scalar) Mul(other Scalar) Scalar {
	o := other.(*secp256k1Scalar)
	var r secp256k1.ModNScalar
	r.Mul2(&s.s, &o.s)
	return &secp256k1Scalar{s: r}
}

func (s *secp256k1Scalar) Invert() (Scalar, error) {
	if s.s.IsZero() {
		return nil, fmt.Errorf("curve: cannot invert the zero scalar")
	}
	var r secp256k1.ModNScalar
	r.Set(&s.s)
	r.InverseValNonConst()
	return &secp256k1Scalar{s: r}, nil
}

func (s *secp256k1Scalar) IsZero() bool {
	return s.s.IsZero()
}

func (s *secp256k1Scalar) Equal(other Scalar) bool {
	o, ok := other.(*secp256k1Scalar)
	if !ok {
		return false
	}
	a := s.s.Bytes()
	b := o.s.Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

func (s *secp256k1Scalar) Bytes() []byte {
	b := s.s.Bytes()
	out := make([]byte, len(b))
	copy(out, b[:])
	return out
}

func (s *secp256k1Scalar) Clone() Scalar {
	var r secp256k1.ModNScalar
	r.Set(&s.s)
	return &secp256k1Scalar{s: r}
}

type secp256k1Point struct {
	p secp256k1.JacobianPoint
}

func (p *secp256k1Point) Add(other Point) Point {
	o := other.(*secp256k1Point)
	a, b := p.p, o.p
	a.ToAffine()
	b.ToAffine()
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a, &b, &r)
	r.ToAffine()
	return &secp256k1Point{p: r}
}

func (p *secp256k1Point) ScalarMult(s Scalar) Point {
	sc := s.(*secp256k1Scalar)
	a := p.p
	a.ToAffine()
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&sc.s, &a, &r)
	r.ToAffine()
	return &secp256k1Point{p: r}
}

func (p *secp256k1Point) IsIdentity() bool {
	a := p.p
	a.ToAffine()
	return (a.X.IsZero() && a.Y.IsZero()) || a.Z.IsZero()
}

func (p *secp256k1Point) Equal(other Point) bool {
	o, ok := other.(*secp256k1Point)
	if !ok {
		return false
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	a := p.p
	b := o.p
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

func (p *secp256k1Point) Bytes() []byte {
	if p.IsIdentity() {
		// The group has no canonical compressed encoding for infinity; PVSS
		// never serializes the identity as a commitment or share in
		// practice, but a fixed all-zero sentinel keeps Bytes total.
		return make([]byte, 33)
	}
	a := p.p
	a.ToAffine()
	pub := secp256k1.NewPublicKey(&a.X, &a.Y)
	return pub.SerializeCompressed()
}

func (p *secp256k1Point) Clone() Point {
	return &secp256k1Point{p: p.p}
}
