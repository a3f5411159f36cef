package gen

// 2D simplex noise in [-1, 1], used for rolling terrain.

var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

type noise struct {
	perm [512]int
}

func newNoise(seed int64) *noise {
	var p [256]int
	for i := range p {
		p[i] = i
	}
	rng := newTreeRNG(seed)
	for i := 255; i > 0; i-- {
		j := rng.nextN(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	n := &noise{}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

func (n *noise) at(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	s := (x + y) * f2
	i, j := floor(x+s), floor(y+s)
	t := float64(i+j) * g2
	x0, y0 := x-(float64(i)-t), y-(float64(j)-t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	corners := [3][2]float64{
		{x0, y0},
		{x0 - float64(i1) + g2, y0 - float64(j1) + g2},
		{x0 - 1 + 2*g2, y0 - 1 + 2*g2},
	}
	ii, jj := i&255, j&255
	grads := [3]int{
		n.perm[ii+n.perm[jj]] & 7,
		n.perm[ii+i1+n.perm[jj+j1]] & 7,
		n.perm[ii+1+n.perm[jj+1]] & 7,
	}

	var sum float64
	for k, c := range corners {
		a := 0.5 - c[0]*c[0] - c[1]*c[1]
		if a < 0 {
			continue
		}
		a *= a
		g := grad2[grads[k]]
		sum += a * a * (g[0]*c[0] + g[1]*c[1])
	}
	return 70 * sum
}

// octaves layers several frequencies of noise. The result stays in [-1, 1].
func (n *noise) octaves(x, y float64, count int, persistence float64) float64 {
	var total, maxVal float64
	amplitude, frequency := 1.0, 1.0
	for i := 0; i < count; i++ {
		total += n.at(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

func floor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
