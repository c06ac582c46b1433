package framing

// Decoder reconstructs frames from a wire byte stream, one byte per Step
// call. It appends into a caller-supplied buffer (typically an Instance's
// RX scratch buffer) and never allocates: Step only ever grows the buffer's
// length up to its existing capacity.
type Decoder struct {
	phase    Phase
	buf      []byte // len == rx_size, cap == payload_max+2
	sofCount uint32
}

// NewDecoder returns a Decoder that accumulates into buf[:0]. buf's
// capacity is the maximum body size (payload_max+2) the decoder will ever
// hold in flight; cap(buf) must equal payload_max+2.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{phase: PhaseDelimiter, buf: buf[:0]}
}

// Phase returns the decoder's current state.
func (d *Decoder) Phase() Phase {
	return d.phase
}

// Len returns the number of body bytes accumulated so far (rx_size).
func (d *Decoder) Len() int {
	return len(d.buf)
}

// SOFCount returns the number of start-of-frame delimiters observed.
func (d *Decoder) SOFCount() uint32 {
	return d.sofCount
}

// room reports whether one more byte can be appended without exceeding the
// buffer's fixed capacity.
func (d *Decoder) room() bool {
	return len(d.buf) < cap(d.buf)
}

func (d *Decoder) appendByte(b byte) {
	d.buf = append(d.buf, b)
}

func (d *Decoder) dropFrame() {
	d.buf = d.buf[:0]
	d.phase = PhaseDelimiter
}

// Step consumes one wire byte. When it closes a frame whose CRC validates,
// it returns the decoded payload (a slice into the caller's buffer, valid
// only until the next Step call) and ok == true. A malformed or
// CRC-mismatched frame is discarded silently: Step returns ok == false and
// the decoder resets to PhaseDelimiter, exactly as if nothing had been
// received.
func (d *Decoder) Step(b byte) (payload []byte, ok bool) {
	switch d.phase {
	case PhaseDelimiter:
		if b == Delim {
			d.sofCount++
			d.phase = PhaseByte
		}
		return nil, false

	case PhaseByte:
		switch {
		case b == Esc:
			d.phase = PhaseEncodedByte
			return nil, false
		case b == Delim:
			payload, ok = d.closeFrame()
			d.buf = d.buf[:0]
			d.phase = PhaseDelimiter
			return payload, ok
		case !d.room():
			d.dropFrame()
			return nil, false
		default:
			d.appendByte(b)
			return nil, false
		}

	case PhaseEncodedByte:
		var unescaped byte
		switch b {
		case 0x5E:
			unescaped = Delim
		case 0x5D:
			unescaped = Esc
		default:
			d.dropFrame()
			return nil, false
		}
		if !d.room() {
			d.dropFrame()
			return nil, false
		}
		d.appendByte(unescaped)
		d.phase = PhaseByte
		return nil, false
	}

	panic("framing: decoder in unknown phase")
}

// closeFrame validates and strips the trailing CRC from the accumulated
// body. It does not mutate decoder state; callers reset buf/phase
// themselves.
func (d *Decoder) closeFrame() (payload []byte, ok bool) {
	n := len(d.buf)
	if n <= crcSize {
		return nil, false
	}
	body, crcBytes := d.buf[:n-crcSize], d.buf[n-crcSize:]
	want := uint16(crcBytes[0]) | uint16(crcBytes[1])<<8
	if CRC16(body) != want {
		return nil, false
	}
	return body, true
}
