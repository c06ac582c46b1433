package pkttransfer

// canChunk is the maximum number of wire bytes (delimiters, escapes and
// stuffed body bytes) a single CAN frame carries.
const canChunk = 8

// Task performs, at most, one transmit step and one receive step. It never
// blocks: if the hardware has nothing ready in either direction it returns
// immediately. Errors from the hardware layer are not surfaced here (a
// transport adapter that observes a hardware failure is expected to make
// TxIsAvail/RxIsReady reflect that on the next Task call rather than
// interrupt the pump), except that a failed Tx aborts the frame in
// progress, since the wire byte it was meant to carry is already lost.
func (inst *Instance) Task() {
	inst.txStep()
	inst.rxStep()
}

func (inst *Instance) txStep() {
	if !inst.enc.Busy() {
		return
	}

	switch tr := inst.tr.(type) {
	case *UART:
		if !tr.HW.TxIsAvail() {
			return
		}
		b, done := inst.enc.Step(inst.cfg.BufTX)
		if tr.HW.Tx(b) != nil {
			inst.enc.Abort()
			return
		}
		if done {
			inst.txPackets++
		}

	case *CAN:
		if !tr.HW.TxIsAvail() {
			return
		}
		var stage [canChunk]byte
		n := 0
		completed := false
		for n < canChunk && inst.enc.Busy() {
			b, done := inst.enc.Step(inst.cfg.BufTX)
			stage[n] = b
			n++
			if done {
				completed = true
				break
			}
		}
		if tr.HW.Tx(stage[:n], tr.TxID) != nil {
			inst.enc.Abort()
			return
		}
		if completed {
			inst.txPackets++
		}
	}
}

func (inst *Instance) rxStep() {
	switch tr := inst.tr.(type) {
	case *UART:
		if !tr.HW.RxIsReady() {
			return
		}
		b, err := tr.HW.Rx()
		if err != nil {
			return
		}
		inst.feedByte(b)

	case *CAN:
		if !tr.HW.RxIsReady() {
			return
		}
		data, err := tr.HW.Rx(tr.RxID)
		if err != nil {
			return
		}
		for _, b := range data {
			inst.feedByte(b)
		}
	}
}

func (inst *Instance) feedByte(b byte) {
	payload, ok := inst.dec.Step(b)
	if !ok {
		return
	}
	inst.rxPackets++
	if inst.app != nil {
		inst.app.OnPacket(payload)
	}
}
