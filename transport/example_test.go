package transport_test

import (
	"fmt"

	"github.com/cwbudde/algo-notemod/dsp/core"
	"github.com/cwbudde/algo-notemod/transport"
)

func ExampleTransport_Tick() {
	tr, err := transport.New(core.DefaultProcessorConfig(), transport.WithTempo(120))
	if err != nil {
		panic(err)
	}

	reg := tr.AddPoller(transport.PollerFunc(func(measures float64) {
		fmt.Printf("%.2f ms (+%.4f measures)\n", tr.Now(), measures)
	}))
	defer reg.Close()

	for range 3 {
		tr.Tick()
	}

	// Output:
	// 0.00 ms (+0.0000 measures)
	// 10.67 ms (+0.0053 measures)
	// 21.33 ms (+0.0053 measures)
}
