package wire_test

import (
	"bytes"
	"io"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/wire"
)

func TestWire(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "wire suite")
}

var _ = Describe("Encoder/Decoder framing", Label("scope:unit", "layer:wire"), func() {
	It("round-trips a sequence of Steps", func() {
		var buf bytes.Buffer
		enc := wire.NewEncoder(&buf)

		steps := []proto.Step{
			proto.NewSpaceStep(0, 0, proto.SpaceCreate{Dimensions: proto.Vec2{X: 400, Y: 400}, Gravity: 0.1}),
			proto.NewEventsStep(1, 0.1, []proto.Event{{ID: 1, Kind: proto.EventDestroy, Destroy: &proto.Destroy{}}}),
		}
		for _, s := range steps {
			Expect(enc.Encode(s)).To(Succeed())
		}

		dec := wire.NewDecoder(&buf)
		for _, want := range steps {
			var got proto.Step
			Expect(dec.Decode(&got)).To(Succeed())
			Expect(got).To(Equal(want))
		}
	})

	It("reports io.EOF cleanly at the end of the stream", func() {
		var buf bytes.Buffer
		enc := wire.NewEncoder(&buf)
		Expect(enc.Encode(proto.NewEventsStep(1, 0.1, nil))).To(Succeed())

		dec := wire.NewDecoder(&buf)
		var step proto.Step
		Expect(dec.Decode(&step)).To(Succeed())

		err := dec.Decode(&step)
		Expect(err).To(MatchError(io.EOF))
	})

	It("rejects a frame length that exceeds the safety limit", func() {
		var buf bytes.Buffer
		buf.Write([]byte{0x7f, 0xff, 0xff, 0xff}) // ~2GB claimed length
		dec := wire.NewDecoder(&buf)
		var step proto.Step
		Expect(dec.Decode(&step)).To(MatchError(ContainSubstring("exceeds")))
	})

	It("surfaces a truncated body as an error rather than panicking", func() {
		var buf bytes.Buffer
		buf.Write([]byte{0, 0, 0, 10}) // claims 10 bytes, supplies none
		dec := wire.NewDecoder(&buf)
		var step proto.Step
		Expect(dec.Decode(&step)).To(HaveOccurred())
	})
})
