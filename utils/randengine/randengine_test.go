package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-tlc/utils/randengine"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := randengine.New(11)
	b := randengine.New(11)
	for _i := 0; _i < 100; _i++ {
		assert.Equal(t, a.Exponential(0.5), b.Exponential(0.5))
		assert.Equal(t, a.Uniform(1, 2), b.Uniform(1, 2))
	}
}

func TestUniformRange(t *testing.T) {
	e := randengine.New(1)
	for _i := 0; _i < 1000; _i++ {
		v := e.Uniform(0.6, 1)
		assert.GreaterOrEqual(t, v, 0.6)
		assert.Less(t, v, 1.)
	}
}

func TestExponentialMean(t *testing.T) {
	e := randengine.New(2)
	sum := 0.
	n := 20000
	for _i := 0; _i < n; _i++ {
		v := e.Exponential(0.25)
		assert.GreaterOrEqual(t, v, 0.)
		sum += v
	}
	assert.InDelta(t, 4, sum/float64(n), 0.2)
}

func TestExponentialRejectsNonPositiveRate(t *testing.T) {
	e := randengine.New(3)
	assert.Panics(t, func() { e.Exponential(0) })
}

func TestDiscreteDistribution(t *testing.T) {
	e := randengine.New(4)
	for _i := 0; _i < 100; _i++ {
		assert.Equal(t, int32(1), e.DiscreteDistribution([]float64{0, 1, 0}))
	}
	counts := [2]int{}
	for _i := 0; _i < 10000; _i++ {
		counts[e.DiscreteDistribution([]float64{1, 3})]++
	}
	assert.InDelta(t, 0.75, float64(counts[1])/10000, 0.03)
}

func TestPTrue(t *testing.T) {
	e := randengine.New(5)
	assert.False(t, e.PTrue(0))
	assert.True(t, e.PTrue(1))
}
