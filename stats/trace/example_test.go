package trace_test

import (
	"fmt"

	"github.com/cwbudde/algo-notemod/stats/trace"
)

func ExampleCalculate() {
	s := trace.Calculate([]float64{0.1, -0.2, 0.3})
	fmt.Printf("peak=%.1f step=%.1f zc=%d\n", s.Peak, s.MaxStep, s.ZeroCrossings)
	// Output:
	// peak=0.3 step=0.5 zc=2
}
