package steplog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/steplog"
)

func TestSteplog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "steplog suite")
}

func sampleSteps() []proto.Step {
	return []proto.Step{
		proto.NewSpaceStep(0, 0, proto.SpaceCreate{Dimensions: proto.Vec2{X: 400, Y: 400}, Gravity: 0.1}),
		proto.NewEventsStep(1, 0.1, []proto.Event{
			{ID: 1, Kind: proto.EventCreate, Object: proto.ObjectPlanet, Create: &proto.ObjCreate{Radius: 10, Mass: 500}},
		}),
		proto.NewEventsStep(2, 0.1, []proto.Event{{ID: 1, Kind: proto.EventDestroy, Destroy: &proto.Destroy{}}}),
	}
}

var _ = Describe("NewWriter suffix dispatch", Label("scope:unit", "layer:steplog"), func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "steplog-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("round-trips through the binary container for a .avro path", func() {
		path := filepath.Join(dir, "game.avro")
		w, err := steplog.NewWriter(path)
		Expect(err).NotTo(HaveOccurred())

		for _, s := range sampleSteps() {
			Expect(w.WriteStep(s)).To(Succeed())
		}
		Expect(w.Close()).To(Succeed())

		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		got, err := steplog.ReadBinary(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(sampleSteps()))
	})

	It("round-trips through newline-delimited JSON for a .jsonl path", func() {
		path := filepath.Join(dir, "game.jsonl")
		w, err := steplog.NewWriter(path)
		Expect(err).NotTo(HaveOccurred())

		for _, s := range sampleSteps() {
			Expect(w.WriteStep(s)).To(Succeed())
		}
		Expect(w.Close()).To(Succeed())

		raw, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		lines := bytes.Count(raw, []byte("\n"))
		Expect(lines).To(Equal(len(sampleSteps())))

		got, err := steplog.ReadJSONL(bytes.NewReader(raw))
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(sampleSteps()))
	})

	It("treats an unrecognized suffix as binary, same as .avro", func() {
		path := filepath.Join(dir, "game.steplog")
		w, err := steplog.NewWriter(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.WriteStep(sampleSteps()[0])).To(Succeed())
		Expect(w.Close()).To(Succeed())

		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		got, err := steplog.ReadBinary(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(1))
	})

	It("leaves a readable partial log if the writer stops after one Step", func() {
		path := filepath.Join(dir, "partial.jsonl")
		w, err := steplog.NewWriter(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.WriteStep(sampleSteps()[0])).To(Succeed())
		// Deliberately not calling Close — simulating a killed process.
		// Every prior WriteStep call already flushed.

		raw, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		got, err := steplog.ReadJSONL(bytes.NewReader(raw))
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(sampleSteps()[:1]))
	})
})
