package engine

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/photonai/arena/internal/maps"
	"github.com/photonai/arena/internal/observability"
	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
	"github.com/photonai/arena/internal/sim/rules"
	"github.com/photonai/arena/internal/world"
)

// slowTickThreshold is the per-tick wall-clock budget past which Run logs
// a warning: past this, a 30Hz-class game can no longer keep up with its
// own Dt.
const slowTickThreshold = 10 * time.Millisecond

// Outcome is the stop predicates' result type, re-exported here because
// the game loop is the package callers actually reach for (spec.md §6).
type Outcome = rules.Outcome

// StepSink receives every Step the game loop produces, in order — the
// Step log writer in a real run, a recording slice in a test. WriteStep
// errors are fatal to the game (spec.md §6 "WriterError propagates").
type StepSink interface {
	WriteStep(step proto.Step) error
}

// Competitor pairs a controller's identity with the live Bot that plays
// it, in the order ships are placed for this game (spec.md §4.7).
type Competitor struct {
	Meta maps.ControllerMeta
	Bot  Bot
}

// Config configures one run of the game loop.
type Config struct {
	Map         maps.MapSpec
	Competitors []Competitor

	// Dt is the fixed tick duration in seconds (spec.md §4.4).
	Dt float32
	// TimeLimit is the wall-clock-of-simulation ceiling used to build the
	// default stop predicate when Stop is nil (spec.md §4.7).
	TimeLimit float32
	// Stop overrides the default bot-count-keyed stop predicate.
	Stop rules.Predicate
	// BotTimeout bounds every single Bot.Call (spec.md §4.6 rule 2).
	BotTimeout time.Duration

	// Sink receives every Step produced, including Step 0 and Step 1. Nil
	// disables recording.
	Sink StepSink
	// Logger receives slow-tick and bot-containment diagnostics. The zero
	// logr.Logger discards everything.
	Logger logr.Logger
	// Clock measures wall-clock tick duration for the slow-tick log and
	// the tick_duration_seconds histogram. Nil defaults to RealClock.
	Clock Clock
}

// GameLoop drives one game from its Config to a final rules.Outcome
// (spec.md §4.7): Step 0 announces the Space, Step 1 creates the planets
// and ships, and every subsequent Step comes from rules.Advance, applied
// to the World and then dispatched to each ship's Bot through the
// ControllerRouter until a stop predicate trips.
type GameLoop struct {
	cfg Config
}

// NewGameLoop creates a GameLoop ready to Run.
func NewGameLoop(cfg Config) *GameLoop {
	return &GameLoop{cfg: cfg}
}

// Run drives the game to completion or until ctx is cancelled. A
// cancelled context returns ctx.Err(); any World invariant violation or
// Sink write error is returned as-is and ends the game immediately,
// since both indicate the event stream itself is broken.
func (g *GameLoop) Run(ctx context.Context) (rules.Outcome, error) {
	stop := g.cfg.Stop
	if stop == nil {
		stop = rules.DefaultPredicate(len(g.cfg.Competitors), g.cfg.TimeLimit)
	}
	clock := g.cfg.Clock
	if clock == nil {
		clock = RealClock{}
	}

	state := world.New()
	router := NewRouter(g.cfg.BotTimeout, g.cfg.Logger)

	step0 := proto.NewSpaceStep(0, 0, g.cfg.Map.Space())
	if err := state.Apply(step0); err != nil {
		return rules.Outcome{}, err
	}
	if err := g.write(step0); err != nil {
		return rules.Outcome{}, err
	}
	for _, c := range g.cfg.Competitors {
		router.Hello(ctx, c.Bot, step0)
	}

	ids := entities.NewIDGenerator(1)
	step1 := buildSetupStep(ids, g.cfg.Map, g.cfg.Competitors)
	if err := state.Apply(step1); err != nil {
		return rules.Outcome{}, err
	}
	if err := g.write(step1); err != nil {
		return rules.Outcome{}, err
	}

	shipIDs := shipIDsByCreateOrder(step1, len(g.cfg.Competitors))
	for i, c := range g.cfg.Competitors {
		router.Bind(shipIDs[i], c.Bot)
	}

	for {
		if err := ctx.Err(); err != nil {
			router.Close()
			return rules.Outcome{}, err
		}

		tickStart := clock.Now()

		controls := router.Controls()
		step := rules.Advance(state.World, ids, g.cfg.Dt, controls)
		if err := state.Apply(step); err != nil {
			router.Close()
			return rules.Outcome{}, err
		}
		if err := g.write(step); err != nil {
			router.Close()
			return rules.Outcome{}, err
		}

		router.Dispatch(ctx, state.World, step)

		g.recordTick(clock.Now().Sub(tickStart), step.Clock)

		if outcome := stop(state.World); outcome != nil {
			router.Close()
			return *outcome, nil
		}
	}
}

func (g *GameLoop) write(step proto.Step) error {
	if g.cfg.Sink == nil {
		return nil
	}
	return g.cfg.Sink.WriteStep(step)
}

// recordTick observes one tick's wall-clock duration into the
// tick_duration_seconds histogram and logs a warning past
// slowTickThreshold — the game loop can't outrun its own Dt forever.
func (g *GameLoop) recordTick(d time.Duration, clock int) {
	if h := observability.GetTickDurationHistogram(); h != nil {
		h.Observe(d.Seconds())
	}
	if d > slowTickThreshold && g.cfg.Logger.Enabled() {
		g.cfg.Logger.WithValues(
			"clock", clock,
			"duration_ms", float64(d.Microseconds())/1000.0,
			"threshold_ms", float64(slowTickThreshold.Microseconds())/1000.0,
		).Info("tick exceeded slow-tick threshold")
	}
}

// buildSetupStep assembles Step 1 (spec.md §4.7): a planet CREATE for
// every planet the map defines, followed by a ship CREATE per competitor
// in competition order. Ids come from ids in that same order, so the
// first len(planets) ids belong to planets and the rest to ships.
func buildSetupStep(ids *entities.IDGenerator, m maps.MapSpec, competitors []Competitor) proto.Step {
	planets := m.Planets()
	events := make([]proto.Event, 0, len(planets)+len(competitors))

	for _, p := range planets {
		p := p
		events = append(events, proto.Event{
			ID:     ids.Next(),
			Kind:   proto.EventCreate,
			Object: proto.ObjectPlanet,
			Create: &p,
		})
	}
	for _, c := range competitors {
		shipCreate := m.Ship(c.Meta)
		events = append(events, proto.Event{
			ID:     ids.Next(),
			Kind:   proto.EventCreate,
			Object: proto.ObjectShip,
			Create: &shipCreate,
		})
	}
	return proto.NewEventsStep(1, 0, events)
}

// shipIDsByCreateOrder extracts the trailing n ship-create ids from step1,
// in the same order buildSetupStep assigned them — which is competition
// order, since ships are appended after every planet.
func shipIDsByCreateOrder(step1 proto.Step, n int) []int {
	shipEvents := make([]int, 0, n)
	for _, evt := range step1.Events {
		if evt.Object == proto.ObjectShip {
			shipEvents = append(shipEvents, evt.ID)
		}
	}
	return shipEvents
}
