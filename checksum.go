package emx

import (
	"encoding/binary"
)

// Checksum computes the 16 bit sum of bytes covered by the record checksum:
// the header from the datagram type field onward, then the body up to and
// excluding the trailing ETX and checksum bytes.
func Checksum(hdr_raw []byte, body []byte) uint16 {
	var sum uint16

	for _, b := range hdr_raw[5:HEADER_SIZE] {
		sum += uint16(b)
	}
	for _, b := range body {
		sum += uint16(b)
	}

	return sum
}

// verify_checksum checks the trailing ETX and checksum of a record body
// (the body here includes the 3 trailing bytes). Some producers write an ETX
// of 0, and some write a checksum of 0; both are tolerated in the wild.
// A body too short to carry the trailing bytes has nothing to verify.
func verify_checksum(hdr_raw []byte, body []byte, order binary.ByteOrder) bool {
	if len(body) < 3 {
		return true
	}

	etx := body[len(body)-3]
	if etx != ETX && etx != 0 {
		return false
	}

	recorded := order.Uint16(body[len(body)-2:])
	computed := Checksum(hdr_raw, body[:len(body)-3])

	// a recorded checksum of zero means the producer didn't bother
	if recorded == 0 && computed != 0 {
		return true
	}

	return recorded == computed
}
