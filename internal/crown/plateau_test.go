package crown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrow_CollectsPlateau(t *testing.T) {
	g := newGrid(7, 7, 0)
	fillBlock(g, 7, 2, 2, 4, 4, 80)
	r := mustRun(t, g, 7, 7, Options{PlateauRadius: 1})

	members, next, err := r.grow(2*7 + 2)
	require.NoError(t, err)
	assert.Equal(t, -1, next)
	assert.Len(t, members, 9)
	assert.Equal(t, 2*7+2, members[0], "start comes first")

	unique := map[int]bool{}
	for _, m := range members {
		unique[m] = true
	}
	assert.Len(t, unique, 9, "no pixel is collected twice")
}

func TestGrow_DefersToHigherNeighbor(t *testing.T) {
	g := newGrid(7, 7, 0)
	fillBlock(g, 7, 2, 2, 4, 4, 80)
	set(g, 7, 4, 5, 90)
	r := mustRun(t, g, 7, 7, Options{PlateauRadius: 1})

	members, next, err := r.grow(2*7 + 2)
	require.NoError(t, err)
	assert.Equal(t, 4*7+5, next)
	assert.NotEmpty(t, members)
}

// ridge returns a 7x3 grid whose interior row holds a run of 40s.
func ridge() []float64 {
	g := newGrid(7, 3, 0)
	fillBlock(g, 7, 1, 1, 1, 5, 40)
	return g
}

func TestGrow_MappedEqualNeighborIsCollected(t *testing.T) {
	r := mustRun(t, ridge(), 7, 3, Options{PlateauRadius: 1})
	r.plateaus = [][]int{{7 + 4}}
	r.labelOf = []int{0}
	r.memo[7+4] = 0

	members, next, err := r.grow(7 + 1)
	require.NoError(t, err)
	assert.Equal(t, 7+4, next, "falls back to the mapped pixel")
	assert.ElementsMatch(t, []int{7 + 1, 7 + 2, 7 + 3, 7 + 4, 7 + 5}, members)
}

func TestGrow_HigherNeighborBeatsMappedEqual(t *testing.T) {
	g := ridge()
	set(g, 7, 1, 5, 60)
	r := mustRun(t, g, 7, 3, Options{PlateauRadius: 1})
	r.plateaus = [][]int{{7 + 4}}
	r.labelOf = []int{0}
	r.memo[7+4] = 0

	members, next, err := r.grow(7 + 1)
	require.NoError(t, err)
	assert.Equal(t, 7+5, next)
	assert.Contains(t, members, 7+4)
}

func TestDiscover_FallsBackToMappedPlateau(t *testing.T) {
	r := mustRun(t, ridge(), 7, 3, Options{PlateauRadius: 1})
	r.plateaus = [][]int{{7 + 4}}
	r.labelOf = []int{0}
	r.memo[7+4] = 0

	p, err := r.discover(7 + 1)
	require.NoError(t, err)
	assert.Equal(t, 0, p)
	assert.Len(t, r.plateaus, 1, "no new plateau")
	for c := 1; c <= 5; c++ {
		assert.Equal(t, 0, r.memo[7+c], "col %d", c)
	}
}

func TestGrow_ZeroRadius(t *testing.T) {
	g := newGrid(5, 5, 40)
	r := mustRun(t, g, 5, 5, Options{PlateauRadius: 0})

	members, next, err := r.grow(2*5 + 2)
	require.NoError(t, err)
	assert.Equal(t, -1, next)
	assert.Equal(t, []int{2*5 + 2}, members)
}

func TestDiscover_Memoized(t *testing.T) {
	g := newGrid(7, 7, 0)
	fillBlock(g, 7, 2, 2, 4, 4, 80)
	r := mustRun(t, g, 7, 7, Options{PlateauRadius: 1})

	p, err := r.discover(3*7 + 3)
	require.NoError(t, err)
	require.Len(t, r.plateaus, 1)

	for row := 2; row <= 4; row++ {
		for col := 2; col <= 4; col++ {
			assert.Equal(t, p, r.memo[row*7+col])
			again, err := r.discover(row*7 + col)
			require.NoError(t, err)
			assert.Equal(t, p, again)
		}
	}
	assert.Len(t, r.plateaus, 1, "memo hits create no plateaus")
}

func TestDiscover_ChainSharesPlateau(t *testing.T) {
	const w, h = 9, 3
	g := newGrid(w, h, 0)
	for c := 1; c <= 7; c++ {
		set(g, w, 1, c, float64(c))
	}
	r := mustRun(t, g, w, h, Options{PlateauRadius: 1})

	p, err := r.discover(w + 1)
	require.NoError(t, err)
	require.Len(t, r.plateaus, 1)
	assert.Equal(t, []int{w + 7}, r.plateaus[p])
	for c := 1; c <= 7; c++ {
		assert.Equal(t, p, r.memo[w+c], "col %d", c)
	}
}

func TestDiscover_DepthExceededLeavesMemoUntouched(t *testing.T) {
	const w, h = 9, 3
	g := newGrid(w, h, 0)
	for c := 1; c <= 7; c++ {
		set(g, w, 1, c, float64(c))
	}
	r := mustRun(t, g, w, h, Options{PlateauRadius: 1, MaxChainDepth: 2})

	_, err := r.discover(w + 1)
	require.ErrorIs(t, err, ErrChainDepthExceeded)
	for i, p := range r.memo {
		assert.Equal(t, -1, p, "memo entry %d", i)
	}
	assert.Empty(t, r.plateaus)
}

func TestRun_MemoConsistent(t *testing.T) {
	const w, h = 25, 18
	for seed := int64(1); seed <= 5; seed++ {
		g := randomGrid(seed, w, h)
		r := mustRun(t, g, w, h, Options{Cutoff: 20, LocalMaxRadius: 1, PlateauRadius: 2})
		labels := make([]int, w*h)

		for i := 1; i < h-1; i++ {
			for j := 1; j < w-1; j++ {
				require.NoError(t, r.labelPixel(i*w+j, labels))
			}
		}

		seen := map[int]int{}
		for p, members := range r.plateaus {
			for _, m := range members {
				assert.Equal(t, p, r.memo[m], "member %d of plateau %d", m, p)
				if other, ok := seen[m]; ok {
					t.Errorf("pixel %d in plateaus %d and %d", m, other, p)
				}
				seen[m] = p
			}
		}
		assert.Len(t, r.labelOf, len(r.plateaus))
	}
}
