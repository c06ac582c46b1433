package pkttransfer

import "github.com/antsver/packets-transfer-driver/pkg/framing"

// Submit hands payload to the driver for transmission, using whatever CAN
// identifier is currently configured on the transport (irrelevant for
// UART). It returns ErrTxOverflow if payload exceeds PayloadMax or if a
// previous submission has not yet been fully handed to the transport.
//
// Submit does not block and does not touch hardware; the frame is emitted
// incrementally by subsequent Task calls.
func (inst *Instance) Submit(payload []byte) error {
	if inst.enc.Busy() {
		return ErrTxOverflow
	}
	if len(payload) > inst.cfg.PayloadMax {
		return ErrTxOverflow
	}

	n := copy(inst.cfg.BufTX, payload)
	crc := framing.CRC16(payload)
	inst.cfg.BufTX[n] = byte(crc)
	inst.cfg.BufTX[n+1] = byte(crc >> 8)
	inst.enc.Start(n + 2)
	return nil
}

// SubmitCAN is the CAN-variant submit entry point: it behaves like Submit
// but additionally records the CAN identifier used for every frame emitted
// by this submission. It returns ErrTxOverflow under the same conditions as
// Submit, and panics if inst was not initialized with a CAN transport
// (mirroring Submit's Init-time contract rather than a runtime condition).
func (inst *Instance) SubmitCAN(payload []byte, canIDTx uint32) error {
	can, ok := inst.tr.(*CAN)
	if !ok {
		panic("pkttransfer: SubmitCAN called on a non-CAN instance")
	}
	if err := inst.Submit(payload); err != nil {
		return err
	}
	can.TxID = canIDTx
	return nil
}

// SetCanIDRx installs the CAN identifier the receive path filters on. It
// panics if inst was not initialized with a CAN transport.
func (inst *Instance) SetCanIDRx(canIDRx uint32) {
	can, ok := inst.tr.(*CAN)
	if !ok {
		panic("pkttransfer: SetCanIDRx called on a non-CAN instance")
	}
	can.RxID = canIDRx
}
