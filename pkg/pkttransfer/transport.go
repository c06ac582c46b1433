package pkttransfer

// App is the application-side delivery callback. OnPacket is invoked
// synchronously from within Task, on whatever goroutine calls Task, for
// every frame whose CRC validates. It must not call back into the Instance
// that invoked it.
type App interface {
	OnPacket(payload []byte)
}

// UARTHardware is the capability set a byte-oriented hardware backend must
// provide: one wire byte transferred per Tx/Rx call.
type UARTHardware interface {
	TxIsAvail() bool
	RxIsReady() bool
	Tx(b byte) error
	Rx() (byte, error)
}

// CANHardware is the capability set a CAN bus hardware backend must
// provide: up to 8 bytes transferred per Tx/Rx call, tagged with a 29-bit
// identifier selected per direction.
type CANHardware interface {
	TxIsAvail() bool
	RxIsReady() bool
	Tx(data []byte, canID uint32) error
	Rx(canIDFilter uint32) (data []byte, err error)
}

// Transport is a tagged union: an Instance is parameterized by exactly one
// of UART or CAN, chosen at Init time, so both variants can coexist in the
// same build without compile-time mutual exclusion.
type Transport interface {
	transport()
}

// UART selects the byte-oriented transport variant.
type UART struct {
	HW UARTHardware
}

func (*UART) transport() {}

// CAN selects the packetized transport variant. TxID and RxID are mutable
// after construction via Instance.SetCanIDRx (RxID) and Instance.SubmitCAN
// (TxID, per submission).
type CAN struct {
	HW   CANHardware
	TxID uint32
	RxID uint32
}

func (*CAN) transport() {}
