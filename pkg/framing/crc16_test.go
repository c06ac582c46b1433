package framing

import "testing"

func TestCRC16ReferenceVector(t *testing.T) {
	got := CRC16([]byte("123456789"))
	if got != 0x906E {
		t.Fatalf("CRC16(\"123456789\") = %#04x, want 0x906E", got)
	}
}

func TestPutCRC16LE(t *testing.T) {
	got := PutCRC16LE(nil, []byte{0x00})
	want := []byte{0x78, 0xF0}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("PutCRC16LE = % X, want % X", got, want)
	}
}
