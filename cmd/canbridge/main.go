//go:build linux

// Command canbridge runs the packet transfer driver over a CAN bus,
// logging every delivered packet and submitting whatever is piped in on
// stdin, one line per packet.
package main

import (
	"bufio"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/antsver/packets-transfer-driver/pkg/pkttransfer"
	"github.com/antsver/packets-transfer-driver/pkg/transport"
)

var (
	ifaceName  = "can0"
	canIDTx    uint = 1
	canIDRx    uint = 2
	payloadMax      = 512
)

func init() {
	flag.StringVar(&ifaceName, "iface", ifaceName, "CAN network interface name")
	flag.UintVar(&canIDTx, "can-tx-id", canIDTx, "CAN identifier used for outgoing frames")
	flag.UintVar(&canIDRx, "can-rx-id", canIDRx, "CAN identifier accepted for incoming frames")
	flag.IntVar(&payloadMax, "payload-max", payloadMax, "maximum payload size in bytes")
}

type loggingApp struct {
	log *zap.SugaredLogger
}

func (a *loggingApp) OnPacket(payload []byte) {
	a.log.Infow("packet received", "len", len(payload))
}

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	bus, err := transport.DialSocketCAN(ifaceName)
	if err != nil {
		sugar.Fatalw("failed to open CAN bus", "iface", ifaceName, "error", err)
	}
	defer bus.Close()

	hw := transport.NewCANBus(bus)
	app := &loggingApp{log: sugar}

	var inst pkttransfer.Instance
	pkttransfer.Init(&inst, &pkttransfer.CAN{HW: hw}, app, pkttransfer.Config{
		PayloadMax: payloadMax,
		BufTX:      make([]byte, payloadMax+2),
		BufRX:      make([]byte, payloadMax+2),
	})
	inst.SetCanIDRx(uint32(canIDRx))

	go submitStdinLines(&inst, uint32(canIDTx), sugar)

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		inst.Task()
	}
}

func submitStdinLines(inst *pkttransfer.Instance, canIDTx uint32, log *zap.SugaredLogger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		if err := inst.SubmitCAN(line, canIDTx); err != nil {
			log.Warnw("submit failed", "error", err)
		}
	}
}
