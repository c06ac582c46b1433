package framing

// EncodeFrame returns the full wire encoding (leading delimiter, stuffed
// payload+CRC, trailing delimiter) of payload in one call. It is a
// convenience wrapper around Encoder for tests and for bridge binaries that
// want to hand a whole frame to a transport in one write; the driver itself
// always drives the Encoder one byte at a time via Instance.Task.
func EncodeFrame(payload []byte) []byte {
	body := make([]byte, 0, len(payload)+crcSize)
	body = append(body, payload...)
	body = PutCRC16LE(body, payload)

	var enc Encoder
	enc.Start(len(body))

	frame := make([]byte, 0, len(body)+4)
	for {
		b, done := enc.Step(body)
		frame = append(frame, b)
		if done {
			break
		}
	}
	return frame
}

// DecodeFrame decodes a single complete wire frame in one call, returning
// its payload. It is a convenience wrapper around Decoder for tests and
// loopback tooling.
func DecodeFrame(frame []byte, payloadMax int) (payload []byte, ok bool) {
	buf := make([]byte, 0, payloadMax+crcSize)
	dec := NewDecoder(buf)
	for _, b := range frame {
		if p, ok := dec.Step(b); ok {
			out := make([]byte, len(p))
			copy(out, p)
			return out, true
		}
	}
	return nil, false
}
