package transport_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/transport"
)

var _ = Describe("ResponseQueue", Label("scope:unit", "layer:transport", "b:scripted-bot"), func() {
	It("dequeues scripted responses in tick order regardless of insertion order", func() {
		q := transport.NewResponseQueue(10)
		Expect(q.Enqueue(3, proto.ControllerState{Thrust: 0.3})).To(BeTrue())
		Expect(q.Enqueue(1, proto.ControllerState{Thrust: 0.1})).To(BeTrue())
		Expect(q.Enqueue(2, proto.ControllerState{Thrust: 0.2})).To(BeTrue())

		var ticks []uint32
		for q.Size() > 0 {
			r, ok := q.Dequeue()
			Expect(ok).To(BeTrue())
			ticks = append(ticks, r.Tick)
		}
		Expect(ticks).To(Equal([]uint32{1, 2, 3}))
	})

	It("rejects a tick already dequeued", func() {
		q := transport.NewResponseQueue(10)
		Expect(q.Enqueue(1, proto.ControllerState{})).To(BeTrue())
		q.Dequeue()
		Expect(q.Enqueue(1, proto.ControllerState{})).To(BeFalse())
	})

	It("rejects a duplicate tick still queued", func() {
		q := transport.NewResponseQueue(10)
		Expect(q.Enqueue(1, proto.ControllerState{})).To(BeTrue())
		Expect(q.Enqueue(1, proto.ControllerState{})).To(BeFalse())
	})

	It("enforces its max size", func() {
		q := transport.NewResponseQueue(1)
		Expect(q.Enqueue(1, proto.ControllerState{})).To(BeTrue())
		Expect(q.Enqueue(2, proto.ControllerState{})).To(BeFalse())
	})
})

var _ = Describe("ScriptedBot", Label("scope:unit", "layer:transport", "b:scripted-bot"), func() {
	It("answers Call from the queue until exhausted, then falls back", func() {
		q := transport.NewResponseQueue(10)
		q.Enqueue(0, proto.ControllerState{Thrust: 1})
		fallback := proto.ControllerState{Thrust: 0.5}
		bot := transport.NewScriptedBot(q, fallback)

		resp, err := bot.Call(context.Background(), proto.Request{})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Thrust).To(Equal(float32(1)))

		resp, err = bot.Call(context.Background(), proto.Request{})
		Expect(err).NotTo(HaveOccurred())
		Expect(*resp).To(Equal(fallback))

		Expect(bot.Close()).To(Succeed())
	})
})
