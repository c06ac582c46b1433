// Package transport provides concrete pkttransfer.UARTHardware and
// pkttransfer.CANHardware implementations backed by real hardware
// libraries: a serial port via go.bug.st/serial, and a CAN bus via
// github.com/notnil/canbus.
package transport

import (
	"sync"

	"go.bug.st/serial"

	"github.com/antsver/packets-transfer-driver/pkg/pkttransfer"
)

// uartRxQueue is the depth of the background reader's buffered channel.
// A byte sits here between arriving on the wire and being drained by the
// poll loop's Rx call.
const uartRxQueue = 256

// UARTPort adapts a go.bug.st/serial Port to pkttransfer.UARTHardware.
// go.bug.st/serial's Read/Write block, so UARTPort runs a background
// goroutine that reads the port continuously and feeds a buffered channel;
// RxIsReady/Rx only ever touch that channel and so never block the driver's
// polling Task loop.
type UARTPort struct {
	port serial.Port

	rxCh chan byte

	mu    sync.Mutex
	rxErr error
}

// NewUARTPort wraps an already-opened serial.Port and starts its
// background reader goroutine.
func NewUARTPort(port serial.Port) *UARTPort {
	u := &UARTPort{
		port: port,
		rxCh: make(chan byte, uartRxQueue),
	}
	go u.readLoop()
	return u
}

func (u *UARTPort) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := u.port.Read(buf)
		if err != nil {
			u.mu.Lock()
			u.rxErr = err
			u.mu.Unlock()
			return
		}
		for i := 0; i < n; i++ {
			u.rxCh <- buf[i]
		}
	}
}

// TxIsAvail always reports true: go.bug.st/serial's Write blocks until
// accepted by the OS driver, so the adapter has nothing more specific to
// report.
func (u *UARTPort) TxIsAvail() bool {
	return true
}

// RxIsReady reports whether a byte is already queued from the background
// reader. It never blocks.
func (u *UARTPort) RxIsReady() bool {
	return len(u.rxCh) > 0
}

// Tx writes one byte to the port.
func (u *UARTPort) Tx(b byte) error {
	_, err := u.port.Write([]byte{b})
	if err != nil {
		return pkttransfer.ErrTxHardwareError
	}
	return nil
}

// Rx returns the next byte queued by the background reader. It does not
// block: callers must check RxIsReady first, matching the rest of the
// UARTHardware contract.
func (u *UARTPort) Rx() (byte, error) {
	select {
	case b := <-u.rxCh:
		return b, nil
	default:
	}

	u.mu.Lock()
	err := u.rxErr
	u.mu.Unlock()
	if err != nil {
		return 0, pkttransfer.ErrRxHardwareError
	}
	return 0, pkttransfer.ErrNoConnection
}
