package engine_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/photonai/arena/internal/engine"
)

var _ = Describe("FakeClock", Label("scope:unit", "layer:engine"), func() {
	It("only advances when told to", func() {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		clock := engine.NewFakeClock(start)
		Expect(clock.Now()).To(Equal(start))
		Expect(clock.Now()).To(Equal(start))

		clock.Advance(5 * time.Second)
		Expect(clock.Now()).To(Equal(start.Add(5 * time.Second)))
	})
})

var _ = Describe("RealClock", Label("scope:unit", "layer:engine"), func() {
	It("tracks wall-clock time", func() {
		clock := engine.NewRealClock()
		before := time.Now()
		Expect(clock.Now()).To(BeTemporally(">=", before))
	})
})
