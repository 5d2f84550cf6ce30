// Package encryption implements the note encryption used for encrypted logs:
// a Diffie-Hellman exchange on a twisted Edwards curve defined over the BN254
// scalar field, followed by HKDF and ChaCha20-Poly1305.
package encryption

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/pkg/errors"

	"github.com/zkrollup/pxe/model/fields"
)

// Curve is the curve instance used for owner keys. Its base field is the
// circuit field so public keys travel through the solver as two fields.
type Curve struct {
	params twistededwards.CurveParams
}

// NewCurve returns the twisted Edwards curve embedded in BN254.
func NewCurve() *Curve {
	return &Curve{params: twistededwards.GetEdwardsCurve()}
}

// Generator returns the base point of the prime order subgroup.
func (c *Curve) Generator() fields.Point {
	return fromAffine(c.params.Base)
}

// Order returns the order of the prime order subgroup.
func (c *Curve) Order() *big.Int {
	return new(big.Int).Set(&c.params.Order)
}

// IsOnCurve reports whether p satisfies the curve equation.
func (c *Curve) IsOnCurve(p fields.Point) bool {
	a := toAffine(p)
	return a.IsOnCurve()
}

// Mul returns scalar * p.
func (c *Curve) Mul(p fields.Point, scalar *big.Int) fields.Point {
	a := toAffine(p)
	var res twistededwards.PointAffine
	res.ScalarMultiplication(&a, scalar)
	return fromAffine(res)
}

// PublicKey derives the public key of a secret.
func (c *Curve) PublicKey(secret fields.Fr) fields.Point {
	return c.Mul(c.Generator(), c.scalar(secret))
}

// scalar reduces a field element into the subgroup scalar range.
func (c *Curve) scalar(f fields.Fr) *big.Int {
	return new(big.Int).Mod(f.BigInt(), &c.params.Order)
}

// randomScalar samples a non-zero scalar from r.
func (c *Curve) randomScalar(r io.Reader) (*big.Int, error) {
	for {
		f, err := fields.RandomFr(r)
		if err != nil {
			return nil, errors.Wrap(err, "could not sample scalar")
		}
		s := c.scalar(f)
		if s.Sign() != 0 {
			return s, nil
		}
	}
}

// KeyPair is an owner key pair.
type KeyPair struct {
	Secret fields.Fr
	Public fields.Point
}

// GenerateKeyPair samples a fresh key pair from r.
func (c *Curve) GenerateKeyPair(r io.Reader) (KeyPair, error) {
	s, err := c.randomScalar(r)
	if err != nil {
		return KeyPair{}, err
	}
	secret := fields.FrFromBig(s)
	return KeyPair{
		Secret: secret,
		Public: c.PublicKey(secret),
	}, nil
}

func toAffine(p fields.Point) twistededwards.PointAffine {
	var a twistededwards.PointAffine
	a.X = p.X.Element()
	a.Y = p.Y.Element()
	return a
}

func fromAffine(a twistededwards.PointAffine) fields.Point {
	return fields.NewPoint(fields.FrFromElement(a.X), fields.FrFromElement(a.Y))
}
