package a

import (
	"math/rand" // want "nondeterministic import \"math/rand\""
	"time"
)

func bad() int {
	_ = time.Now() // want "time.Now in deterministic package"
	return rand.Intn(10)
}

func good(d time.Duration) time.Duration {
	return d * time.Second
}
