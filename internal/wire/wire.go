// Package wire implements the length-prefixed CBOR framing spec.md §6
// calls for on a "self-describing binary container": every record is
// encoded with github.com/fxamacker/cbor/v2, then written as a 4-byte
// big-endian length prefix followed by the encoded bytes. PipeBot
// (internal/transport) uses this framing as is; the binary Step log
// (internal/steplog) uses only Marshal/Unmarshal and writes its own
// length-prefixed gzip block around each encoded Step, so the two share
// the CBOR encoding but not the byte-level framing.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// maxFrameBytes bounds a single decoded frame so a corrupt or hostile
// length prefix can't make Decode allocate unbounded memory.
const maxFrameBytes = 64 << 20

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: building cbor encode mode: %v", err))
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: building cbor decode mode: %v", err))
	}
}

// Marshal encodes v to CBOR using the package's canonical encode mode,
// with no framing — used where the caller supplies its own container
// (steplog's gzip blocks, for instance).
func Marshal(v interface{}) ([]byte, error) {
	b, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: encoding: %w", err)
	}
	return b, nil
}

// Unmarshal decodes CBOR bytes produced by Marshal.
func Unmarshal(data []byte, v interface{}) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire: decoding: %w", err)
	}
	return nil
}

// Encoder writes one CBOR-encoded, length-prefixed frame per Write call.
type Encoder struct {
	w io.Writer
}

// NewEncoder wraps w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode marshals v to CBOR and writes it as one length-prefixed frame.
func (e *Encoder) Encode(v interface{}) error {
	payload, err := encMode.Marshal(v)
	if err != nil {
		return fmt.Errorf("wire: encoding frame: %w", err)
	}
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(payload)))
	if _, err := e.w.Write(prefix[:]); err != nil {
		return fmt.Errorf("wire: writing frame length: %w", err)
	}
	if _, err := e.w.Write(payload); err != nil {
		return fmt.Errorf("wire: writing frame body: %w", err)
	}
	return nil
}

// Decoder reads one length-prefixed CBOR frame per Decode call.
type Decoder struct {
	r io.Reader
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the next frame and unmarshals it into v. It returns
// io.EOF (unwrapped) when the stream ends cleanly between frames.
func (d *Decoder) Decode(v interface{}) error {
	var prefix [4]byte
	if _, err := io.ReadFull(d.r, prefix[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("wire: truncated frame length: %w", err)
		}
		return err
	}
	n := binary.BigEndian.Uint32(prefix[:])
	if n > maxFrameBytes {
		return fmt.Errorf("wire: frame of %d bytes exceeds %d byte limit", n, maxFrameBytes)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(d.r, payload); err != nil {
		return fmt.Errorf("wire: truncated frame body: %w", err)
	}
	if err := decMode.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("wire: decoding frame: %w", err)
	}
	return nil
}
