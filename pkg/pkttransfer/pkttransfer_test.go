package pkttransfer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeUART is an in-memory UARTHardware: tx is an outbound queue the test
// inspects, rx is an inbound queue the test feeds.
type fakeUART struct {
	tx []byte
	rx []byte
}

func (h *fakeUART) TxIsAvail() bool { return true }
func (h *fakeUART) RxIsReady() bool { return len(h.rx) > 0 }
func (h *fakeUART) Tx(b byte) error { h.tx = append(h.tx, b); return nil }
func (h *fakeUART) Rx() (byte, error) {
	b := h.rx[0]
	h.rx = h.rx[1:]
	return b, nil
}

type recordingApp struct {
	packets [][]byte
}

func (a *recordingApp) OnPacket(payload []byte) {
	out := make([]byte, len(payload))
	copy(out, payload)
	a.packets = append(a.packets, out)
}

func newUARTInstance(t *testing.T, payloadMax int) (*Instance, *fakeUART, *recordingApp) {
	t.Helper()
	hw := &fakeUART{}
	app := &recordingApp{}
	inst := &Instance{}
	Init(inst, &UART{HW: hw}, app, Config{
		PayloadMax: payloadMax,
		BufTX:      make([]byte, payloadMax+2),
		BufRX:      make([]byte, payloadMax+2),
	})
	return inst, hw, app
}

func drainTx(inst *Instance, hw *fakeUART) {
	for {
		st := inst.GetState()
		if st.TxSize == 0 {
			return
		}
		inst.Task()
	}
}

func TestUARTVectors(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		frame   []byte
	}{
		{"single zero byte", []byte{0x00}, []byte{0x7E, 0x00, 0x78, 0xF0, 0x7E}},
		{"crc reference digits",
			[]byte{0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39},
			[]byte{0x7E, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39, 0x6E, 0x90, 0x7E}},
		{"escapes esc and delim",
			[]byte{0x01, 0x7D, 0x02, 0x7E},
			[]byte{0x7E, 0x01, 0x7D, 0x5D, 0x02, 0x7D, 0x5E, 0x8B, 0x36, 0x7E}},
		{"crc bytes themselves stuffed",
			[]byte{0x7E, 0x7D, 0x7E, 0x7D},
			[]byte{0x7E, 0x7D, 0x5E, 0x7D, 0x5D, 0x7D, 0x5E, 0x7D, 0x5D, 0xC8, 0xB5, 0x7E}},
	}

	for _, tc := range cases {
		t.Run(tc.name+"/submit+drain", func(t *testing.T) {
			inst, hw, _ := newUARTInstance(t, 512)
			require.NoError(t, inst.Submit(tc.payload))
			drainTx(inst, hw)
			require.Equal(t, tc.frame, hw.tx)
			require.EqualValues(t, 1, inst.GetState().TxPackets)
		})

		t.Run(tc.name+"/decode delivers payload", func(t *testing.T) {
			inst, hw, app := newUARTInstance(t, 512)
			hw.rx = append([]byte{}, tc.frame...)
			for hw.RxIsReady() {
				inst.Task()
			}
			require.Len(t, app.packets, 1)
			require.Equal(t, tc.payload, app.packets[0])
			require.EqualValues(t, 1, inst.GetState().RxPackets)
		})
	}
}

func TestSubmitRejectsOversizedPayload(t *testing.T) {
	inst, _, _ := newUARTInstance(t, 4)
	err := inst.Submit([]byte{1, 2, 3, 4, 5})
	require.ErrorIs(t, err, ErrTxOverflow)
}

func TestSubmitAcceptsExactlyPayloadMax(t *testing.T) {
	inst, _, _ := newUARTInstance(t, 4)
	err := inst.Submit([]byte{1, 2, 3, 4})
	require.NoError(t, err)
}

func TestSubmitRejectsWhileBusy(t *testing.T) {
	inst, _, _ := newUARTInstance(t, 16)
	require.NoError(t, inst.Submit([]byte{1, 2, 3}))
	err := inst.Submit([]byte{4, 5, 6})
	require.ErrorIs(t, err, ErrTxOverflow)
}

func TestDeinitIsIdempotent(t *testing.T) {
	inst, _, _ := newUARTInstance(t, 16)
	require.True(t, inst.IsInit())

	inst.Deinit()
	require.False(t, inst.IsInit())
	first := *inst

	inst.Deinit()
	require.False(t, inst.IsInit())
	require.Equal(t, first, *inst)
}

func TestCountersAreMonotonic(t *testing.T) {
	inst, hw, _ := newUARTInstance(t, 512)
	var lastSOF, lastRx, lastTx uint32

	require.NoError(t, inst.Submit([]byte{1, 2, 3}))
	for i := 0; i < 50; i++ {
		hw.rx = append(hw.rx, 0x7E)
		inst.Task()
		st := inst.GetState()
		require.GreaterOrEqual(t, st.SOFCount, lastSOF)
		require.GreaterOrEqual(t, st.RxPackets, lastRx)
		require.GreaterOrEqual(t, st.TxPackets, lastTx)
		lastSOF, lastRx, lastTx = st.SOFCount, st.RxPackets, st.TxPackets
	}
}

// fakeCAN is an in-memory CANHardware delivering at most one staged frame
// per Rx call and recording every frame handed to Tx.
type fakeCAN struct {
	txFrames [][]byte
	txIDs    []uint32
	rxQueue  [][]byte
}

func (h *fakeCAN) TxIsAvail() bool { return true }
func (h *fakeCAN) RxIsReady() bool { return len(h.rxQueue) > 0 }
func (h *fakeCAN) Tx(data []byte, canID uint32) error {
	cp := append([]byte{}, data...)
	h.txFrames = append(h.txFrames, cp)
	h.txIDs = append(h.txIDs, canID)
	return nil
}
func (h *fakeCAN) Rx(canIDFilter uint32) ([]byte, error) {
	f := h.rxQueue[0]
	h.rxQueue = h.rxQueue[1:]
	return f, nil
}

func TestCANScenario(t *testing.T) {
	hw := &fakeCAN{}
	app := &recordingApp{}
	inst := &Instance{}
	Init(inst, &CAN{HW: hw}, app, Config{
		PayloadMax: 512,
		BufTX:      make([]byte, 514),
		BufRX:      make([]byte, 514),
	})
	inst.SetCanIDRx(2)

	payload := []byte{0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39}
	require.NoError(t, inst.SubmitCAN(payload, 1))

	for inst.GetState().TxSize != 0 {
		inst.Task()
	}

	require.Len(t, hw.txFrames, 2)
	require.Equal(t, 8, len(hw.txFrames[0]))
	require.Equal(t, 5, len(hw.txFrames[1]))
	require.EqualValues(t, 1, hw.txIDs[0])
	require.EqualValues(t, 1, hw.txIDs[1])

	concat := append(append([]byte{}, hw.txFrames[0]...), hw.txFrames[1]...)
	wantUARTFrame := []byte{0x7E, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39, 0x6E, 0x90, 0x7E}
	require.Equal(t, wantUARTFrame, concat)

	// Feed the same bytes back under the configured RX identifier.
	hw.rxQueue = [][]byte{hw.txFrames[0], hw.txFrames[1]}
	for hw.RxIsReady() {
		inst.Task()
	}

	require.Len(t, app.packets, 1)
	require.Equal(t, payload, app.packets[0])
}
