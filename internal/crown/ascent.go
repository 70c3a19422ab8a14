package crown

// ascend climbs from idx to its local apex. Every step strictly increases the
// value, so the walk cannot revisit a pixel.
func (r *run) ascend(idx int) (int, error) {
	for {
		next, err := r.step(idx)
		if err != nil {
			return -1, err
		}
		if next < 0 {
			return idx, nil
		}
		idx = next
	}
}

// step returns the pixel with the strictly greatest value in the local-max
// window around idx, or -1 if none is higher than idx itself. Among equal
// candidates the first in row-major order wins.
func (r *run) step(idx int) (int, error) {
	bestVal, err := r.value(idx)
	if err != nil {
		return -1, err
	}
	best := -1

	y0, y1, x0, x1 := r.window(idx, r.opts.LocalMaxRadius)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			n := y*r.width + x
			v, err := r.value(n)
			if err != nil {
				return -1, err
			}
			if v > bestVal {
				best, bestVal = n, v
			}
		}
	}
	return best, nil
}
