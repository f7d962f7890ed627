package proto

import (
	"fmt"
	"strconv"
	"strings"
)

// ProtocolVersion names a revision of this Step/Event/Request schema.
// Format: "v" followed by a positive integer major version.
type ProtocolVersion string

// ProtocolVersionV1 is the schema this package implements.
const ProtocolVersionV1 ProtocolVersion = "v1"

// ParseVersion parses a version string of the form "v<N>".
func ParseVersion(versionStr string) (ProtocolVersion, error) {
	if versionStr == "" {
		return "", fmt.Errorf("version string cannot be empty")
	}
	if !strings.HasPrefix(versionStr, "v") {
		return "", fmt.Errorf("version must start with 'v', got '%s'", versionStr)
	}
	numStr := versionStr[1:]
	if numStr == "" {
		return "", fmt.Errorf("version must include a number after 'v', got '%s'", versionStr)
	}
	num, err := strconv.Atoi(numStr)
	if err != nil {
		return "", fmt.Errorf("version number must be a valid integer, got '%s': %w", numStr, err)
	}
	if num <= 0 {
		return "", fmt.Errorf("version number must be positive, got %d", num)
	}
	return ProtocolVersion(versionStr), nil
}

// IsCompatible reports whether two protocol versions share a major version.
func IsCompatible(a, b ProtocolVersion) bool {
	return a == b
}

// Request is what the engine sends a Bot each tick (spec.md §4.6, §6): the
// Step the bot is allowed to see, and the ship it is controlling — nil
// ShipID is the one-time "hello, here is the world" call before a ship
// exists for that bot.
type Request struct {
	Step   Step `json:"step" cbor:"step"`
	ShipID *int `json:"ship_id" cbor:"ship_id"`
}
