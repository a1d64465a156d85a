package curve

import "math/big"

// referenceSecp256k1 is a from-scratch affine-coordinates double-and-add
// implementation of secp256k1, adapted from the teacher repository's own
// hand-rolled secp256k1 curve (crypto/secp256k1_curve.go there). It exists
// solely so this package's tests can cross-check the production,
// decred-backed Derive against an independently-written computation; it is
// never used on the success path (see deriveSecp256k1, which delegates to
// github.com/decred/dcrd/dcrec/secp256k1/v4).
type referenceSecp256k1 struct {
	p, b *big.Int
}

func newReferenceSecp256k1() *referenceSecp256k1 {
	p, _ := new(big.Int).SetString(
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)
	return &referenceSecp256k1{p: p, b: big.NewInt(7)}
}

// add returns the sum of (x1,y1) and (x2,y2), with (0,0) representing the
// point at infinity.
func (c *referenceSecp256k1) add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	if x1.Sign() == 0 && y1.Sign() == 0 {
		return new(big.Int).Set(x2), new(big.Int).Set(y2)
	}
	if x2.Sign() == 0 && y2.Sign() == 0 {
		return new(big.Int).Set(x1), new(big.Int).Set(y1)
	}
	if x1.Cmp(x2) == 0 {
		if y1.Cmp(y2) == 0 {
			return c.double(x1, y1)
		}
		return new(big.Int), new(big.Int)
	}

	dy := new(big.Int).Sub(y2, y1)
	dy.Mod(dy, c.p)
	dx := new(big.Int).Sub(x2, x1)
	dx.Mod(dx, c.p)
	dxInv := new(big.Int).ModInverse(dx, c.p)
	if dxInv == nil {
		return new(big.Int), new(big.Int)
	}
	slope := dy.Mul(dy, dxInv)
	slope.Mod(slope, c.p)

	x3 := new(big.Int).Mul(slope, slope)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, c.p)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, slope)
	y3.Sub(y3, y1)
	y3.Mod(y3, c.p)

	return x3, y3
}

// double returns 2*(x1,y1).
func (c *referenceSecp256k1) double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	if y1.Sign() == 0 {
		return new(big.Int), new(big.Int)
	}
	x1sq := new(big.Int).Mul(x1, x1)
	x1sq.Mod(x1sq, c.p)
	num := new(big.Int).Mul(big.NewInt(3), x1sq)
	num.Mod(num, c.p)

	den := new(big.Int).Mul(big.NewInt(2), y1)
	den.Mod(den, c.p)
	denInv := new(big.Int).ModInverse(den, c.p)
	if denInv == nil {
		return new(big.Int), new(big.Int)
	}
	slope := num.Mul(num, denInv)
	slope.Mod(slope, c.p)

	x3 := new(big.Int).Mul(slope, slope)
	x3.Sub(x3, new(big.Int).Mul(big.NewInt(2), x1))
	x3.Mod(x3, c.p)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, slope)
	y3.Sub(y3, y1)
	y3.Mod(y3, c.p)

	return x3, y3
}

// scalarBaseMult returns d*G by repeated doubling and conditional adding,
// starting from the standard secp256k1 generator point.
func (c *referenceSecp256k1) scalarBaseMult(d *big.Int) (*big.Int, *big.Int) {
	gx, _ := new(big.Int).SetString(
		"79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798", 16)
	gy, _ := new(big.Int).SetString(
		"483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8", 16)

	rx, ry := new(big.Int), new(big.Int) // point at infinity
	px, py := gx, gy
	for i := d.BitLen() - 1; i >= 0; i-- {
		rx, ry = c.double(rx, ry)
		if d.Bit(i) == 1 {
			rx, ry = c.add(rx, ry, px, py)
		}
	}
	return rx, ry
}
