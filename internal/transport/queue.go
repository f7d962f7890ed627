package transport

import (
	"context"
	"sort"
	"sync"

	"github.com/photonai/arena/internal/proto"
)

// ScriptedResponse pairs a clock tick with the ControllerState a scripted
// bot answers for it.
type ScriptedResponse struct {
	Tick  uint32
	State proto.ControllerState
}

// ResponseQueue holds a bot's scripted responses keyed by clock tick,
// dequeued lowest-tick-first regardless of insertion order. This is the
// same sequence-dedup/ordering discipline a real bot transport needs for
// out-of-order network delivery, repurposed here to script a bot's
// answers for a test or a recorded-match replay: Enqueue(tick, ...) can
// be called in any order (e.g. loading a recorded game's responses from
// a file that isn't tick-sorted) and Dequeue always returns the next
// tick's response.
type ResponseQueue struct {
	mu           sync.Mutex
	responses    map[uint32]proto.ControllerState
	ordered      []uint32
	maxSize      int
	nextSequence uint32
}

// NewResponseQueue creates a queue holding at most maxSize scripted
// responses at once.
func NewResponseQueue(maxSize int) *ResponseQueue {
	return &ResponseQueue{
		responses:    make(map[uint32]proto.ControllerState),
		maxSize:      maxSize,
		nextSequence: 0,
	}
}

// Enqueue scripts state for tick. It returns false if tick is not after
// the last dequeued tick, is already scripted, or the queue is full.
func (q *ResponseQueue) Enqueue(tick uint32, state proto.ControllerState) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if tick < q.nextSequence {
		return false
	}
	if _, exists := q.responses[tick]; exists {
		return false
	}
	if len(q.responses) >= q.maxSize {
		return false
	}

	q.responses[tick] = state
	q.ordered = append(q.ordered, tick)
	sort.Slice(q.ordered, func(i, j int) bool { return q.ordered[i] < q.ordered[j] })
	return true
}

// Dequeue removes and returns the scripted response for the lowest
// remaining tick.
func (q *ResponseQueue) Dequeue() (ScriptedResponse, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ordered) == 0 {
		return ScriptedResponse{}, false
	}
	tick := q.ordered[0]
	q.ordered = q.ordered[1:]
	state := q.responses[tick]
	delete(q.responses, tick)
	q.nextSequence = tick + 1
	return ScriptedResponse{Tick: tick, State: state}, true
}

// Size returns the number of scripted responses still queued.
func (q *ResponseQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.responses)
}

// ScriptedBot is a Bot that answers every Call with the next queued
// ResponseQueue entry, falling back to a fixed ControllerState once the
// queue runs dry. Useful for replaying a recorded opponent or scripting a
// deterministic opponent in integration tests, without a real transport.
type ScriptedBot struct {
	queue    *ResponseQueue
	fallback proto.ControllerState
}

// NewScriptedBot wraps queue as a Bot, answering fallback once queue is
// exhausted.
func NewScriptedBot(queue *ResponseQueue, fallback proto.ControllerState) *ScriptedBot {
	return &ScriptedBot{queue: queue, fallback: fallback}
}

func (b *ScriptedBot) Call(_ context.Context, _ proto.Request) (*proto.ControllerState, error) {
	if resp, ok := b.queue.Dequeue(); ok {
		state := resp.State
		return &state, nil
	}
	state := b.fallback
	return &state, nil
}

func (b *ScriptedBot) Close() error { return nil }
