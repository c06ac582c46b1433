// Command uartbridge runs the packet transfer driver over a serial port,
// logging every delivered packet and submitting whatever is piped in on
// stdin, one line per packet.
package main

import (
	"bufio"
	"flag"
	"os"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/antsver/packets-transfer-driver/pkg/pkttransfer"
	"github.com/antsver/packets-transfer-driver/pkg/transport"
)

var (
	portPath   = "/dev/ttyUSB0"
	baudRate   = 115200
	payloadMax = 512
)

func init() {
	flag.StringVar(&portPath, "port", portPath, "serial port device path")
	flag.IntVar(&baudRate, "baud", baudRate, "serial port baud rate")
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

	mode := &serial.Mode{BaudRate: baudRate}
	port, err := serial.Open(portPath, mode)
	if err != nil {
		sugar.Fatalw("failed to open serial port", "port", portPath, "error", err)
	}
	defer port.Close()

	hw := transport.NewUARTPort(port)
	app := &loggingApp{log: sugar}

	var inst pkttransfer.Instance
	pkttransfer.Init(&inst, &pkttransfer.UART{HW: hw}, app, pkttransfer.Config{
		PayloadMax: payloadMax,
		BufTX:      make([]byte, payloadMax+2),
		BufRX:      make([]byte, payloadMax+2),
	})

	go submitStdinLines(&inst, sugar)

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		inst.Task()
	}
}

func submitStdinLines(inst *pkttransfer.Instance, log *zap.SugaredLogger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		if err := inst.Submit(line); err != nil {
			log.Warnw("submit failed", "error", err)
		}
	}
}
