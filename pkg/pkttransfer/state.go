package pkttransfer

import "github.com/antsver/packets-transfer-driver/pkg/framing"

// State is a snapshot of an Instance's runtime state, as returned by
// GetState. Counters are informational and may wrap; they are only ever
// non-decreasing between calls.
type State struct {
	TxPhase framing.Phase
	TxSize  int
	TxSent  int

	RxPhase framing.Phase
	RxSize  int

	SOFCount  uint32
	RxPackets uint32
	TxPackets uint32

	// CANIDTx/CANIDRx are populated only when the instance was initialized
	// with the CAN transport variant.
	CANIDTx uint32
	CANIDRx uint32
}

// GetState copies the instance's runtime state out.
func (inst *Instance) GetState() State {
	s := State{
		TxPhase:   inst.enc.Phase(),
		TxSize:    inst.enc.Size(),
		TxSent:    inst.enc.Sent(),
		RxPhase:   inst.dec.Phase(),
		RxSize:    inst.dec.Len(),
		SOFCount:  inst.dec.SOFCount(),
		RxPackets: inst.rxPackets,
		TxPackets: inst.txPackets,
	}
	if can, ok := inst.tr.(*CAN); ok {
		s.CANIDTx = can.TxID
		s.CANIDRx = can.RxID
	}
	return s
}
