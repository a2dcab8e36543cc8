package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 5*time.Millisecond)
}

func TestPaymentSnapshot(t *testing.T) {
	var p PaymentCounters
	p.Verified.Inc()
	p.Rejected.Inc()
	p.Rejected.Inc()
	p.GatewayCalls.Inc()

	assert.Equal(t, PaymentSnapshot{Verified: 1, Rejected: 2, GatewayCalls: 1}, p.Snapshot())
}
