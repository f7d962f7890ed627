package engine

import "errors"

// Sentinel errors the ControllerRouter reports for the two failure modes
// spec.md §4.6 names: the transport itself failing (timeout, closed pipe,
// non-decodable reply) and the bot replying with a well-formed-but-invalid
// response (NaN/Inf controls). Both are contained the same way — the bot
// is unbound and its last controls persist (the "dead-man's hand") — but
// are reported under distinct errors so callers can tell them apart in
// logs and metrics.
var (
	ErrBotTransport    = errors.New("bot transport error")
	ErrBotMisbehaviour = errors.New("bot misbehaviour")
)
