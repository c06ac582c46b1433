// Package pkttransfer implements a transport-agnostic driver that exchanges
// variable-length application payloads as HDLC-style framed byte streams
// across a serial link (a byte-oriented UART or a packetized CAN bus).
//
// An Instance is a caller-owned aggregate: no heap allocation happens after
// construction, there is no internal locking, and there is no internal time
// base. Every call on a given Instance (Submit, Task, SetCanIDRx, Deinit)
// must be externally serialized by the caller; independent Instances share
// no state and may be driven concurrently from separate goroutines.
package pkttransfer

import (
	"github.com/antsver/packets-transfer-driver/pkg/framing"
)

// Config holds the caller-owned fixed-size storage an Instance operates
// over. BufTX and BufRX must each have length PayloadMax+2 and must remain
// valid and unaliased for the Instance's lifetime.
type Config struct {
	PayloadMax int
	BufTX      []byte
	BufRX      []byte
}

// Instance is the driver's per-channel state object. Its size is
// deterministic once constructed, so a caller may keep it in static
// storage. Init allocates the small Decoder state once; apart from that,
// nothing here escapes to the heap beyond the buffers the caller already
// supplied in Config.
type Instance struct {
	tr  Transport
	app App
	cfg Config

	enc framing.Encoder
	dec *framing.Decoder

	rxPackets uint32
	txPackets uint32
}

// Init initializes inst for use, copying tr, app and cfg in and zeroing all
// runtime state. Reinitialization (calling Init again) is idempotent:
// prior state is discarded.
func Init(inst *Instance, tr Transport, app App, cfg Config) {
	if cfg.PayloadMax <= 0 {
		panic("pkttransfer: PayloadMax must be positive")
	}
	if len(cfg.BufTX) != cfg.PayloadMax+2 || len(cfg.BufRX) != cfg.PayloadMax+2 {
		panic("pkttransfer: BufTX/BufRX must have length PayloadMax+2")
	}

	*inst = Instance{tr: tr, app: app, cfg: cfg}
	inst.dec = framing.NewDecoder(inst.cfg.BufRX[:0])
}

// Deinit zeros the instance. Calling Deinit twice is legal and leaves the
// instance in the same zeroed state both times.
func (inst *Instance) Deinit() {
	*inst = Instance{}
}

// IsInit reports whether inst has been initialized (and not since
// deinitialized).
func (inst *Instance) IsInit() bool {
	return inst != nil && inst.cfg.PayloadMax != 0
}

// Config returns a copy of the configuration passed to Init.
func (inst *Instance) Config() Config {
	return inst.cfg
}

// Transport returns the transport variant passed to Init.
func (inst *Instance) Transport() Transport {
	return inst.tr
}
