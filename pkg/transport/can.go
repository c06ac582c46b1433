package transport

import (
	"github.com/notnil/canbus"

	"github.com/antsver/packets-transfer-driver/pkg/pkttransfer"
)

// CANBus adapts a notnil/canbus Bus to pkttransfer.CANHardware. Unlike
// UART, CAN frames carry their identifier alongside the payload, so Tx and
// Rx both take/return the identifier explicitly rather than fixing it at
// construction time.
type CANBus struct {
	bus canbus.Bus
}

// NewCANBus wraps an already-opened canbus.Bus.
func NewCANBus(bus canbus.Bus) *CANBus {
	return &CANBus{bus: bus}
}

// TxIsAvail always reports true: canbus.Bus.Send blocks on the socket
// write, so there is no separate readiness signal to poll.
func (c *CANBus) TxIsAvail() bool {
	return true
}

// RxIsReady always reports true for the same reason TxIsAvail does, so the
// pump calls Rx on every Task tick. Rx waits in canbus.Bus.Receive until a
// frame arrives (SocketCAN sets no read timeout); a receive error is
// returned and the pump treats it as nothing received on that tick.
func (c *CANBus) RxIsReady() bool {
	return true
}

// Tx sends data, up to 8 bytes, as a single CAN frame under canID. The
// driver's CAN identifiers are 29-bit, so every frame is sent extended;
// Frame.Validate would reject a standard (11-bit) frame whose ID exceeds
// 0x7FF.
func (c *CANBus) Tx(data []byte, canID uint32) error {
	frame := canbus.Frame{ID: canID, Extended: true, Len: uint8(len(data))}
	copy(frame.Data[:], data)
	if err := c.bus.Send(frame); err != nil {
		return pkttransfer.ErrTxHardwareError
	}
	return nil
}

// Rx receives one CAN frame and returns its data bytes if its identifier
// matches canIDFilter. Frames under any other identifier are discarded;
// the caller is expected to poll again on the next Task tick.
func (c *CANBus) Rx(canIDFilter uint32) ([]byte, error) {
	frame, err := c.bus.Receive()
	if err != nil {
		return nil, pkttransfer.ErrRxHardwareError
	}
	if frame.ID != canIDFilter {
		return nil, pkttransfer.ErrNoConnection
	}
	return frame.Data[:frame.Len], nil
}
