package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-logr/logr"

	"github.com/photonai/arena/internal/observability"
	"github.com/photonai/arena/internal/proto"
	"github.com/photonai/arena/internal/sim/entities"
	"github.com/photonai/arena/internal/sim/rules"
)

// Unbind reasons recorded against the bot_unbind_total{reason} counter.
const (
	unbindReasonTransport     = "transport_error"
	unbindReasonMisbehaviour  = "misbehaviour"
	unbindReasonShipDestroyed = "ship_destroyed"
	unbindReasonGameOver      = "game_over"
)

// ControllerRouter binds one Bot per ship, applies the vision filter to
// each Step before handing it to a bot, and contains any failing bot
// rather than letting it stop the game (spec.md §4.6).
//
// A bound bot whose Call fails — transport error, timeout, or a malformed
// response — is unbound and closed; its last known controls are left in
// place for the rest of the game (the "dead-man's hand"), exactly as a
// ship that never responds again would coast on its last heading.
type ControllerRouter struct {
	timeout time.Duration
	logger  logr.Logger

	bots     map[int]Bot
	controls map[int]entities.ControllerState
}

// NewRouter creates an empty ControllerRouter. timeout bounds every
// Bot.Call; logger may be the zero logr.Logger (discards everything).
func NewRouter(timeout time.Duration, logger logr.Logger) *ControllerRouter {
	return &ControllerRouter{
		timeout:  timeout,
		logger:   logger,
		bots:     make(map[int]Bot),
		controls: make(map[int]entities.ControllerState),
	}
}

// Bind associates shipID with bot for the rest of the game, starting it
// at the all-stop control state.
func (r *ControllerRouter) Bind(shipID int, bot Bot) {
	r.bots[shipID] = bot
	r.controls[shipID] = entities.ZeroControllerState()
	if g := observability.GetActiveBotsGauge(); g != nil {
		g.Inc()
	}
}

// Hello sends step (expected to be the Space-Create step) to bot with a
// nil ship id — the one-time introduction spec.md §4.7 Step 0 describes,
// before any ship exists for the bot to control. The response, if any, is
// discarded; a failure here is not fatal to the game, only logged.
func (r *ControllerRouter) Hello(ctx context.Context, bot Bot, step proto.Step) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if _, err := bot.Call(callCtx, proto.Request{Step: step, ShipID: nil}); err != nil {
		r.logger.V(1).Info("bot hello failed", "error", err.Error())
	}
}

// Controls returns a snapshot of the current per-ship control state, fed
// to rules.Advance for the next tick.
func (r *ControllerRouter) Controls() map[int]entities.ControllerState {
	out := make(map[int]entities.ControllerState, len(r.controls))
	for id, c := range r.controls {
		out[id] = c
	}
	return out
}

// Dispatch sends step (filtered per ship) to every bound bot and records
// the controls each returns, or unbinds a bot that fails to respond
// validly. Ships that died this tick receive one final look at the
// current step with a null ship_id (spec.md §4.6 rule 1 — the only case
// where a bot may legitimately reply null) before being unbound.
func (r *ControllerRouter) Dispatch(ctx context.Context, world *entities.World, step proto.Step) {
	ids := make([]int, 0, len(r.bots))
	for id := range r.bots {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		bot := r.bots[id]
		if _, alive := world.Objects[id]; !alive {
			r.sendTerminal(ctx, bot, id, step)
			r.unbind(id, unbindReasonShipDestroyed)
			continue
		}

		filtered := rules.FilterForShip(world, id, step)
		shipID := id
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		resp, err := bot.Call(callCtx, proto.Request{Step: filtered, ShipID: &shipID})
		cancel()

		if err != nil {
			r.logger.Info("unbinding bot after transport error", "ship_id", id, "error", fmt.Errorf("%w: %v", ErrBotTransport, err).Error())
			r.unbind(id, unbindReasonTransport)
			continue
		}
		if resp == nil {
			r.logger.Info("unbinding bot after nil response to a bound ship", "ship_id", id, "error", ErrBotMisbehaviour.Error())
			r.unbind(id, unbindReasonMisbehaviour)
			continue
		}
		if !validControllerState(*resp) {
			r.logger.Info("unbinding bot after malformed response", "ship_id", id, "error", ErrBotMisbehaviour.Error())
			r.unbind(id, unbindReasonMisbehaviour)
			continue
		}

		r.controls[id] = entities.ControllerState{Fire: resp.Fire, Rotate: resp.Rotate, Thrust: resp.Thrust}
	}
}

func (r *ControllerRouter) sendTerminal(ctx context.Context, bot Bot, shipID int, step proto.Step) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if _, err := bot.Call(callCtx, proto.Request{Step: step, ShipID: nil}); err != nil {
		r.logger.V(1).Info("bot terminal call failed", "ship_id", shipID, "error", err.Error())
	}
}

// unbind removes a bot from routing but leaves its last controls in
// place in r.controls — the dead-man's hand.
func (r *ControllerRouter) unbind(shipID int, reason string) {
	bot, ok := r.bots[shipID]
	if !ok {
		return
	}
	delete(r.bots, shipID)
	if err := bot.Close(); err != nil {
		r.logger.V(1).Info("bot close failed", "ship_id", shipID, "error", err.Error())
	}
	if c := observability.GetBotUnbindCounter(); c != nil {
		c.WithLabelValues(reason).Inc()
	}
	if g := observability.GetActiveBotsGauge(); g != nil {
		g.Dec()
	}
}

// Close disposes every still-bound bot, best effort.
func (r *ControllerRouter) Close() {
	ids := make([]int, 0, len(r.bots))
	for id := range r.bots {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		r.unbind(id, unbindReasonGameOver)
	}
}

func validControllerState(c proto.ControllerState) bool {
	return isFinite(c.Rotate) && isFinite(c.Thrust)
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
