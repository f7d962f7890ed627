// Command arena runs one local game between two simple built-in bots and
// writes its Step log to disk — a thin demonstration of the engine, not
// the tournament CLI, config loader, or replay viewer spec.md leaves to
// external tooling.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/photonai/arena/internal/engine"
	"github.com/photonai/arena/internal/maps"
	"github.com/photonai/arena/internal/observability"
	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/replay"
	"github.com/photonai/arena/internal/steplog"
	"github.com/photonai/arena/internal/transport"
)

func main() {
	mapName := flag.String("map", "orbital", "registered map name")
	seed := flag.Int64("seed", 1, "map seed")
	timeLimit := flag.Float64("time-limit", 120, "simulated seconds before a timeout draw")
	out := flag.String("out", "game.avro", "step log path (.jsonl, .json or .ndjson for JSON lines, anything else for binary)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *mapName, int32(*seed), float32(*timeLimit), *out); err != nil {
		log.Fatalf("arena: %v", err)
	}
}

func run(ctx context.Context, mapName string, seed int32, timeLimit float32, out string) error {
	observability.InitMetrics()
	logger := observability.NewLogger()

	gcStop := observability.StartGCMonitor(ctx, 2*time.Second, logger)
	defer close(gcStop)

	reg := maps.NewRegistry()
	spec, err := reg.Build(mapName, seed, "1.0.0")
	if err != nil {
		return fmt.Errorf("building map %q: %w", mapName, err)
	}

	sink, err := steplog.NewWriter(out)
	if err != nil {
		return fmt.Errorf("opening step log %q: %w", out, err)
	}
	defer sink.Close()

	store := replay.NewSnapshotStore()
	wrapped := replay.NewSnapshottingSink(sink, store, 30)

	loop := engine.NewGameLoop(engine.Config{
		Map: spec,
		Competitors: []engine.Competitor{
			{Meta: maps.ControllerMeta{Name: "orbiter", Version: "v1"}, Bot: transport.NewLocalBot(orbiterBot)},
			{Meta: maps.ControllerMeta{Name: "gunner", Version: "v1"}, Bot: transport.NewLocalBot(gunnerBot)},
		},
		Dt:         1.0 / 30.0,
		TimeLimit:  timeLimit,
		BotTimeout: 50 * time.Millisecond,
		Sink:       wrapped,
		Logger:     logger,
		Clock:      engine.NewRealClock(),
	})

	outcome, err := loop.Run(ctx)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if outcome.Winner != nil {
		fmt.Fprintf(os.Stdout, "game over: %s (winner: %s)\n", outcome.Reason, outcome.Winner.Name)
	} else {
		fmt.Fprintf(os.Stdout, "game over: %s (draw)\n", outcome.Reason)
	}
	fmt.Fprintf(os.Stdout, "snapshots retained at ticks: %v\n", store.Ticks())
	return nil
}

// orbiterBot thrusts steadily and rotates slowly, a stand-in for a real
// controller — it never looks at the Step it's handed.
func orbiterBot(_ context.Context, req proto.Request) (*proto.ControllerState, error) {
	return &proto.ControllerState{Thrust: 0.4, Rotate: 0.1, Fire: false}, nil
}

// gunnerBot fires continuously while holding a fixed thrust, sweeping
// its bearing with a period derived from the Step clock so it's at least
// a deterministic function of the game rather than a constant.
func gunnerBot(_ context.Context, req proto.Request) (*proto.ControllerState, error) {
	rotate := float32(0.3 * math.Sin(float64(req.Step.Clock)/20.0))
	return &proto.ControllerState{Thrust: 0.2, Rotate: rotate, Fire: true}, nil
}
