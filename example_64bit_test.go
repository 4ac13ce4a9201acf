//go:build amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x || wasm

// The labels below assume 8-byte words.

package memlat_test

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/hupe1980/memlat"
	"github.com/hupe1980/memlat/testutil"
)

// Example_deterministicClock runs a tiny sweep against a scripted clock, so
// every cell reports the same synthetic latency.
func Example_deterministicClock() {
	p, err := memlat.New(
		memlat.WithMinElements(8),
		memlat.WithMaxElements(16),
		memlat.WithBudget(10*time.Second),
		memlat.WithClock(&testutil.StepClock{Step: 1}),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := p.Run(context.Background(), os.Stdout); err != nil {
		log.Fatal(err)
	}
	// Output:
	// ,   8B,  16B,  32B,  64B,
	//   64B,125000000.0,125000000.0,125000000.0,
	//  128B,62500000.0,62500000.0,62500000.0,62500000.0,
}
