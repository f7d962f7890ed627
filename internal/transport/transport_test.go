package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/transport"
	"github.com/photonai/arena/internal/wire"
)

func TestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "transport suite")
}

// halves combines an independent Reader/Writer/Closer into one
// io.ReadWriteCloser, the shape an os.Pipe or stdin/stdout pair has in
// production but that io.Pipe's two pipe ends don't provide directly.
type halves struct {
	io.Reader
	io.Writer
	io.Closer
}

func connectedPipes() (io.ReadWriteCloser, io.ReadWriteCloser) {
	aR, aW := io.Pipe()
	bR, bW := io.Pipe()
	side1 := halves{Reader: bR, Writer: aW, Closer: aW}
	side2 := halves{Reader: aR, Writer: bW, Closer: bW}
	return side1, side2
}

var _ = Describe("LocalBot", Label("scope:unit", "layer:transport"), func() {
	It("calls through to the wrapped function", func() {
		bot := transport.NewLocalBot(func(_ context.Context, req proto.Request) (*proto.ControllerState, error) {
			return &proto.ControllerState{Fire: true, Rotate: 0, Thrust: 1}, nil
		})
		resp, err := bot.Call(context.Background(), proto.Request{})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Fire).To(BeTrue())
		Expect(bot.Close()).To(Succeed())
	})
})

var _ = Describe("PipeBot", Label("scope:unit", "layer:transport"), func() {
	It("round-trips a request/response over a pair of connected pipes", func() {
		engineSide, botSide := connectedPipes()
		defer engineSide.Close()
		defer botSide.Close()

		bot := transport.NewPipeBot(engineSide)

		go func() {
			dec := wire.NewDecoder(botSide)
			enc := wire.NewEncoder(botSide)
			var req proto.Request
			if err := dec.Decode(&req); err != nil {
				return
			}
			_ = enc.Encode(proto.ControllerState{Fire: true, Rotate: 0.25, Thrust: 0.5})
		}()

		shipID := 3
		resp, err := bot.Call(context.Background(), proto.Request{ShipID: &shipID})
		Expect(err).NotTo(HaveOccurred())
		Expect(*resp).To(Equal(proto.ControllerState{Fire: true, Rotate: 0.25, Thrust: 0.5}))
	})

	It("returns the context error when the bot process never answers", func() {
		engineSide, botSide := connectedPipes()
		defer engineSide.Close()
		defer botSide.Close()

		bot := transport.NewPipeBot(engineSide)
		go func() {
			// Drain the request so the encode side doesn't block, then go silent.
			_, _ = io.Copy(io.Discard, botSide)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := bot.Call(ctx, proto.Request{})
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
	})

	It("surfaces a closed pipe as an error rather than hanging", func() {
		engineSide, botSide := connectedPipes()
		bot := transport.NewPipeBot(engineSide)
		Expect(botSide.Close()).To(Succeed())
		Expect(bot.Close()).To(Succeed())

		_, err := bot.Call(context.Background(), proto.Request{})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("WebSocketBot", Label("scope:integration", "layer:transport", "dep:gorilla-websocket"), func() {
	It("round-trips a request/response over a real websocket connection", func() {
		serverDone := make(chan *transport.WebSocketBot, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := transport.Upgrader.Upgrade(w, r, nil)
			Expect(err).NotTo(HaveOccurred())
			serverDone <- transport.NewWebSocketBot(conn)
		}))
		defer srv.Close()

		wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
		clientConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		Expect(err).NotTo(HaveOccurred())
		defer clientConn.Close()

		serverBot := <-serverDone
		defer serverBot.Close()

		// Act as the bot process: read the Request the engine sends, reply
		// with a fixed ControllerState.
		go func() {
			var req proto.Request
			if err := clientConn.ReadJSON(&req); err != nil {
				return
			}
			_ = clientConn.WriteJSON(proto.ControllerState{Fire: false, Rotate: -0.5, Thrust: 0.2})
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		resp, err := serverBot.Call(ctx, proto.Request{})
		Expect(err).NotTo(HaveOccurred())
		Expect(*resp).To(Equal(proto.ControllerState{Fire: false, Rotate: -0.5, Thrust: 0.2}))
	})
})
