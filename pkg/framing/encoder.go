package framing

// Encoder produces the wire encoding of a TX buffer one byte per Step call.
// It holds no buffer of its own (the caller, an Instance, owns the body
// bytes: payload followed by its little-endian CRC) and passes them in on
// every call. This keeps the Encoder reentrant and allocation-free: an
// Encoder is a few words of state that can live in static storage.
type Encoder struct {
	phase Phase
	sent  int // body bytes consumed so far (tx_sent)
	size  int // body bytes total, 0 means idle (tx_size)
}

// Busy reports whether a frame is currently being transmitted.
func (e *Encoder) Busy() bool {
	return e.size != 0
}

// Phase returns the encoder's current state.
func (e *Encoder) Phase() Phase {
	return e.phase
}

// Sent returns the number of body bytes already consumed from the source.
func (e *Encoder) Sent() int {
	return e.sent
}

// Size returns the number of body bytes in the current frame, or 0 if idle.
func (e *Encoder) Size() int {
	return e.size
}

// Start begins transmitting a new frame of the given body size. The caller
// must not call Start while Busy.
func (e *Encoder) Start(size int) {
	e.phase = PhaseDelimiter
	e.sent = 0
	e.size = size
}

// Abort discards the frame in progress and returns the encoder to idle.
// It is meant for a caller that lost a wire byte returned by Step (a
// transport write failure): the frame can no longer be reconstructed, so
// there is no point continuing to step through it.
func (e *Encoder) Abort() {
	e.phase = PhaseDelimiter
	e.sent = 0
	e.size = 0
}

// Step advances the encoder by one wire byte and returns it. body is the
// source buffer (payload + CRC) for the frame in progress; only
// body[:e.Size()] is read. done reports that this byte was the trailing
// delimiter closing the frame: the encoder has returned to idle and the
// caller should count a transmitted packet.
//
// Step must not be called while !Busy().
func (e *Encoder) Step(body []byte) (b byte, done bool) {
	switch e.phase {
	case PhaseDelimiter:
		e.phase = PhaseByte
		return Delim, false

	case PhaseByte:
		if e.sent == e.size {
			e.phase = PhaseDelimiter
			e.size = 0
			e.sent = 0
			return Delim, true
		}
		src := body[e.sent]
		if needsEscape(src) {
			e.phase = PhaseEncodedByte
			return Esc, false
		}
		e.sent++
		return src, false

	case PhaseEncodedByte:
		src := body[e.sent]
		e.sent++
		e.phase = PhaseByte
		return src ^ escapeXor, false
	}

	panic("framing: encoder in unknown phase")
}
