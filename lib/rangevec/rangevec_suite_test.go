package rangevec_test

import (
	"testing"

	"github.com/ValentinKolb/rangevec/lib/rangevec"
	rvtesting "github.com/ValentinKolb/rangevec/lib/rangevec/testing"
)

func zeroDefault() *rangevec.RangeVec[int64] {
	return rangevec.New[int64]()
}

func minusOneDefault() *rangevec.RangeVec[int64] {
	return rangevec.NewFunc(func() int64 { return -1 }, func(a, b int64) bool { return a == b })
}

func TestRangeVecSuite(t *testing.T) {
	rvtesting.RunRangeVecTests(t, "ZeroDefault", zeroDefault)
	rvtesting.RunRangeVecTests(t, "MinusOneDefault", minusOneDefault)
}

func BenchmarkRangeVec(b *testing.B) {
	rvtesting.RunRangeVecBenchmarks(b, "ZeroDefault", zeroDefault, 1024)
}
