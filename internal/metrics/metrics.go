package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// PaymentCounters tracks verification outcomes and gateway traffic since process start.
type PaymentCounters struct {
	Verified  Counter
	Duplicate Counter
	Rejected  Counter
	Failed    Counter

	GatewayCalls  Counter
	GatewayErrors Counter
}

type PaymentSnapshot struct {
	Verified      uint64 `json:"verified"`
	Duplicate     uint64 `json:"duplicate"`
	Rejected      uint64 `json:"rejected"`
	Failed        uint64 `json:"failed"`
	GatewayCalls  uint64 `json:"gatewayCalls"`
	GatewayErrors uint64 `json:"gatewayErrors"`
}

func (p *PaymentCounters) Snapshot() PaymentSnapshot {
	return PaymentSnapshot{
		Verified:      p.Verified.Load(),
		Duplicate:     p.Duplicate.Load(),
		Rejected:      p.Rejected.Load(),
		Failed:        p.Failed.Load(),
		GatewayCalls:  p.GatewayCalls.Load(),
		GatewayErrors: p.GatewayErrors.Load(),
	}
}

// Payments is the process-wide instance reported by the health endpoint.
var Payments PaymentCounters
