package delaunay

import (
	"math"
	"math/big"

	"gonum.org/v1/gonum/spatial/r2"
)

// Error bounds of the floating point filters. Determinants within the bound
// are evaluated again in exact rational arithmetic.
const (
	epsilon     = 0x1p-53
	ccwErrBound = (3 + 16*epsilon) * epsilon
	iccErrBound = (10 + 96*epsilon) * epsilon
)

// orient returns 1 if a, b, c are in counter-clockwise order, -1 if
// clockwise and 0 if they are collinear.
func orient(a, b, c r2.Vec) int {
	detleft := (a.X - c.X) * (b.Y - c.Y)
	detright := (a.Y - c.Y) * (b.X - c.X)
	det := detleft - detright
	bound := ccwErrBound * (math.Abs(detleft) + math.Abs(detright))
	switch {
	case det > bound:
		return 1
	case det < -bound:
		return -1
	}
	return orientExact(a, b, c)
}

func orientExact(a, b, c r2.Vec) int {
	acx, acy := ratSub(a.X, c.X), ratSub(a.Y, c.Y)
	bcx, bcy := ratSub(b.X, c.X), ratSub(b.Y, c.Y)
	left := new(big.Rat).Mul(acx, bcy)
	right := new(big.Rat).Mul(acy, bcx)
	return left.Cmp(right)
}

// inCircle reports whether p lies strictly inside the circumcircle of the
// counter-clockwise triangle a, b, c. Cocircular points are not inside.
func inCircle(a, b, c, p r2.Vec) bool {
	dx, dy := a.X-p.X, a.Y-p.Y
	ex, ey := b.X-p.X, b.Y-p.Y
	fx, fy := c.X-p.X, c.Y-p.Y
	ap := dx*dx + dy*dy
	bp := ex*ex + ey*ey
	cp := fx*fx + fy*fy

	det := dx*(ey*cp-bp*fy) - dy*(ex*cp-bp*fx) + ap*(ex*fy-ey*fx)
	permanent := (math.Abs(ey*cp)+math.Abs(bp*fy))*math.Abs(dx) +
		(math.Abs(ex*cp)+math.Abs(bp*fx))*math.Abs(dy) +
		(math.Abs(ex*fy)+math.Abs(ey*fx))*ap
	bound := iccErrBound * permanent
	switch {
	case det > bound:
		return true
	case det < -bound:
		return false
	}
	return inCircleExact(a, b, c, p) > 0
}

func inCircleExact(a, b, c, p r2.Vec) int {
	dx, dy := ratSub(a.X, p.X), ratSub(a.Y, p.Y)
	ex, ey := ratSub(b.X, p.X), ratSub(b.Y, p.Y)
	fx, fy := ratSub(c.X, p.X), ratSub(c.Y, p.Y)
	ap := ratAdd(ratMul(dx, dx), ratMul(dy, dy))
	bp := ratAdd(ratMul(ex, ex), ratMul(ey, ey))
	cp := ratAdd(ratMul(fx, fx), ratMul(fy, fy))

	t0 := ratMul(dx, ratSubRat(ratMul(ey, cp), ratMul(bp, fy)))
	t1 := ratMul(dy, ratSubRat(ratMul(ex, cp), ratMul(bp, fx)))
	t2 := ratMul(ap, ratSubRat(ratMul(ex, fy), ratMul(ey, fx)))
	return ratAdd(ratSubRat(t0, t1), t2).Sign()
}

func ratSub(x, y float64) *big.Rat {
	return new(big.Rat).Sub(new(big.Rat).SetFloat64(x), new(big.Rat).SetFloat64(y))
}

func ratSubRat(x, y *big.Rat) *big.Rat { return new(big.Rat).Sub(x, y) }
func ratAdd(x, y *big.Rat) *big.Rat    { return new(big.Rat).Add(x, y) }
func ratMul(x, y *big.Rat) *big.Rat    { return new(big.Rat).Mul(x, y) }

// circumdelta returns the circumcenter of a, b, c relative to a.
func circumdelta(a, b, c r2.Vec) r2.Vec {
	d := r2.Sub(b, a)
	e := r2.Sub(c, a)
	bl := r2.Norm2(d)
	cl := r2.Norm2(e)
	k := 0.5 / r2.Cross(d, e)
	return r2.Vec{
		X: (e.Y*bl - d.Y*cl) * k,
		Y: (d.X*cl - e.X*bl) * k,
	}
}

// circumradius2 returns the squared circumradius of a, b, c. It is +Inf or
// NaN for collinear points.
func circumradius2(a, b, c r2.Vec) float64 {
	return r2.Norm2(circumdelta(a, b, c))
}

func circumcenter(a, b, c r2.Vec) r2.Vec {
	return r2.Add(a, circumdelta(a, b, c))
}
