package blend

// binomial5 is the 5-tap binomial low-pass kernel shared by downsampling and
// upsampling.
var binomial5 = [5]float64{1.0 / 16, 4.0 / 16, 6.0 / 16, 4.0 / 16, 1.0 / 16}

// reflect101 maps an out-of-range index into [0, n) by mirroring about the
// edge pixels without repeating them.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// blur applies the separable binomial kernel scaled by gain in each
// direction.
func blur(p *Plane, gain float64) *Plane {
	tmp := NewPlane(p.W, p.H, p.C)
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			for c := 0; c < p.C; c++ {
				var sum float64
				for k := -2; k <= 2; k++ {
					sum += binomial5[k+2] * p.At(reflect101(x+k, p.W), y, c)
				}
				tmp.Set(x, y, c, sum*gain)
			}
		}
	}
	out := NewPlane(p.W, p.H, p.C)
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			for c := 0; c < p.C; c++ {
				var sum float64
				for k := -2; k <= 2; k++ {
					sum += binomial5[k+2] * tmp.At(x, reflect101(y+k, p.H), c)
				}
				out.Set(x, y, c, sum*gain)
			}
		}
	}
	return out
}

// Downsample low-pass filters p and keeps every other row and column. The
// result is ⌈W/2⌉ × ⌈H/2⌉.
func Downsample(p *Plane) *Plane {
	blurred := blur(p, 1)
	out := NewPlane((p.W+1)/2, (p.H+1)/2, p.C)
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			for c := 0; c < p.C; c++ {
				out.Set(x, y, c, blurred.At(2*x, 2*y, c))
			}
		}
	}
	return out
}

// Upsample expands p to w × h by inserting zero rows and columns and
// low-pass filtering with a gain of 2 per axis, which restores the mean
// intensity. w and h should be 2·W or 2·W−1 (likewise for H) for the result
// to line up with the level p was downsampled from.
func Upsample(p *Plane, w, h int) *Plane {
	spread := NewPlane(w, h, p.C)
	for y := 0; y < p.H && 2*y < h; y++ {
		for x := 0; x < p.W && 2*x < w; x++ {
			for c := 0; c < p.C; c++ {
				spread.Set(2*x, 2*y, c, p.At(x, y, c))
			}
		}
	}
	return blur(spread, 2)
}
