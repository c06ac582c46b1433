//go:build linux

package transport

import (
	"net"

	"golang.org/x/sys/unix"

	"github.com/notnil/canbus"
)

// SocketCAN is a canbus.Bus backed by a Linux SocketCAN raw socket. Frames
// are marshaled to and from the kernel's struct can_frame layout using
// canbus.Frame's own MarshalBinary/UnmarshalBinary, which is specified to
// match that layout exactly.
type SocketCAN struct {
	fd int
}

// DialSocketCAN opens a raw CAN socket bound to the named interface
// (e.g. "can0").
func DialSocketCAN(ifaceName string) (*SocketCAN, error) {
	iface, err := net.InterfaceByName(ifaceName)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, err
	}

	addr := &unix.SockaddrCAN{Ifindex: iface.Index}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &SocketCAN{fd: fd}, nil
}

// Send implements canbus.Bus.
func (s *SocketCAN) Send(frame canbus.Frame) error {
	buf, err := frame.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = unix.Write(s.fd, buf)
	return err
}

// Receive implements canbus.Bus.
func (s *SocketCAN) Receive() (canbus.Frame, error) {
	buf := make([]byte, 16)
	n, err := unix.Read(s.fd, buf)
	if err != nil {
		return canbus.Frame{}, err
	}
	if n < 16 {
		return canbus.Frame{}, canbus.ErrInvalidLen
	}
	var frame canbus.Frame
	if err := frame.UnmarshalBinary(buf); err != nil {
		return canbus.Frame{}, err
	}
	return frame, nil
}

// Close implements canbus.Bus.
func (s *SocketCAN) Close() error {
	return unix.Close(s.fd)
}
