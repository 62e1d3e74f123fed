package emx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksumCoverage(t *testing.T) {
	// the leading size field and STX are outside the covered range
	hdr_raw := make([]byte, HEADER_SIZE)
	for i := range hdr_raw {
		hdr_raw[i] = 0xFF
	}
	for i := 5; i < HEADER_SIZE; i++ {
		hdr_raw[i] = 1
	}

	body := []byte{2, 3, 4}
	require.Equal(t, uint16(15+9), Checksum(hdr_raw, body))

	// modulo 2^16 arithmetic
	big := make([]byte, 300)
	for i := range big {
		big[i] = 0xFF
	}
	sum := Checksum(hdr_raw, big)
	require.Equal(t, uint16((15+300*255)%65536), sum)
}

func TestVerifyChecksum(t *testing.T) {
	rec := encode_record(t, binary.LittleEndian, DEPTH, 2040, 20200101, 0, 1,
		depth_payload(t, binary.LittleEndian, nil))

	body := rec[HEADER_SIZE:]
	require.True(t, verify_checksum(rec[:HEADER_SIZE], body, binary.LittleEndian))

	// flip a payload byte; the recorded checksum no longer holds
	body[0]++
	require.False(t, verify_checksum(rec[:HEADER_SIZE], body, binary.LittleEndian))
	body[0]--

	// a wrong recorded value fails
	break_checksum(rec, binary.LittleEndian)
	require.False(t, verify_checksum(rec[:HEADER_SIZE], body, binary.LittleEndian))
}

func TestVerifyChecksumZeroRecorded(t *testing.T) {
	rec := encode_record(t, binary.LittleEndian, DEPTH, 2040, 20200101, 0, 1,
		depth_payload(t, binary.LittleEndian, nil))

	// some producers omit the checksum and write zero
	rec[len(rec)-2] = 0
	rec[len(rec)-1] = 0
	require.True(t, verify_checksum(rec[:HEADER_SIZE], rec[HEADER_SIZE:], binary.LittleEndian))
}

func TestVerifyChecksumEtx(t *testing.T) {
	rec := encode_record(t, binary.LittleEndian, DEPTH, 2040, 20200101, 0, 1,
		depth_payload(t, binary.LittleEndian, nil))

	// a zero end marker is a tolerated in-the-wild deviation
	rec[len(rec)-3] = 0
	require.True(t, verify_checksum(rec[:HEADER_SIZE], rec[HEADER_SIZE:], binary.LittleEndian))

	// anything else is not
	rec[len(rec)-3] = 0x55
	require.False(t, verify_checksum(rec[:HEADER_SIZE], rec[HEADER_SIZE:], binary.LittleEndian))
}

func TestVerifyChecksumZeroBody(t *testing.T) {
	rec := encode_header_only(t, binary.LittleEndian, DEPTH, 2040, 20200101, 0)

	// no trailing bytes exist, so there is nothing to verify
	require.True(t, verify_checksum(rec, nil, binary.LittleEndian))
}
