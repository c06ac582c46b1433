package framing

import "github.com/sigurn/crc16"

// x25Table is the CRC-16/X-25 parameter set: poly 0x1021 (reflected as
// 0x8408), init 0xFFFF, refIn/refOut true, xorOut 0xFFFF. It is the named
// standard profile that produces CRC16("123456789") == 0x906E.
var x25Table = crc16.MakeTable(crc16.CRC16_X_25)

// CRC16 computes the CRC-16/X-25 checksum of data.
func CRC16(data []byte) uint16 {
	return crc16.Checksum(data, x25Table)
}

// PutCRC16LE appends the little-endian encoding of the CRC-16/X-25 of data
// to dst and returns the extended slice.
func PutCRC16LE(dst, data []byte) []byte {
	crc := CRC16(data)
	return append(dst, byte(crc), byte(crc>>8))
}
