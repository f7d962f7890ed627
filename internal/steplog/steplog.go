// Package steplog implements the two contractual on-disk encodings of
// the Step stream (spec.md §6): a self-describing binary container with
// one gzip block per Step, and a newline-delimited JSON encoding of the
// same logical record. NewWriter picks between them by file suffix.
package steplog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/photonai/arena/internal/proto"
)

// Writer accepts the Step stream a game loop produces, one call per tick
// (plus the initial Space-Create), and persists it durably. WriteStep
// flushes before returning so a killed process leaves a readable partial
// log (spec.md §6: "writers must flush on exception").
type Writer interface {
	WriteStep(step proto.Step) error
	Close() error
}

// jsonSuffixes are the file extensions that select the JSON-lines writer;
// everything else — including the `.avro` suffix spec.md names — selects
// the binary writer. No avro codec exists in this module's dependency
// set, so `.avro` is honored as an alias for the binary container rather
// than implemented literally.
var jsonSuffixes = map[string]bool{
	".json":  true,
	".jsonl": true,
	".ndjson": true,
}

// NewWriter creates a file at path and returns the Writer that suffix
// selects.
func NewWriter(path string) (Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("steplog: creating %s: %w", path, err)
	}
	if jsonSuffixes[strings.ToLower(filepath.Ext(path))] {
		return newJSONLWriter(f), nil
	}
	return newBinaryWriter(f), nil
}
