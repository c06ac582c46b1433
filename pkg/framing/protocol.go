// Package framing implements the HDLC-style byte-stuffed frame format used
// by the packet transfer driver: a CRC-16/X-25-protected payload, delimited
// by 0x7E and escaped per RFC-1662-style byte stuffing.
package framing

// Wire constants. These are bit-exact and shared by the encoder and decoder.
const (
	Delim byte = 0x7E // frame delimiter
	Esc   byte = 0x7D // escape prefix
)

// escapeXor is XORed into a byte following Esc to recover (or produce) the
// original Delim/Esc value.
const escapeXor = 0x20

// crcSize is the number of trailing bytes the little-endian CRC occupies in
// the frame body.
const crcSize = 2

// needsEscape reports whether b must be stuffed before going on the wire.
func needsEscape(b byte) bool {
	return b == Delim || b == Esc
}

// Phase is one of the three states shared by both the encoder and the
// decoder's state machines.
type Phase int

const (
	// PhaseDelimiter is the state before a leading delimiter has been
	// produced/consumed for the current frame.
	PhaseDelimiter Phase = iota
	// PhaseByte is the state transferring ordinary (possibly escapable)
	// body bytes.
	PhaseByte
	// PhaseEncodedByte is the state immediately following an escape byte.
	PhaseEncodedByte
)

func (p Phase) String() string {
	switch p {
	case PhaseDelimiter:
		return "Delimiter"
	case PhaseByte:
		return "Byte"
	case PhaseEncodedByte:
		return "EncodedByte"
	default:
		return "Phase(?)"
	}
}
