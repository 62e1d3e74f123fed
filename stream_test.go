package emx

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// encode_blob serialises a sequence of fixed-size values with the given
// byte order; the building block for synthetic record bodies.
func encode_blob(t *testing.T, order binary.ByteOrder, items ...any) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	for _, item := range items {
		require.NoError(t, binary.Write(buf, order, item))
	}

	return buf.Bytes()
}

// encode_record frames a payload as a complete record: header, payload,
// ETX and a correct checksum.
func encode_record(t *testing.T, order binary.ByteOrder, id DatagramID, model uint16, date, time_ms uint32, counter uint16, payload []byte) []byte {
	t.Helper()

	hdr := Header{
		Bytes_in_datagram: uint32(16 + len(payload) + 3),
		Start_identifier:  STX,
		Datagram_type:     id,
		Em_model_number:   model,
		Date:              date,
		Time_ms:           time_ms,
		Counter:           counter,
		Serial_number:     101,
	}

	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, order, &hdr))
	buf.Write(payload)

	sum := Checksum(buf.Bytes()[:HEADER_SIZE], payload)

	buf.WriteByte(ETX)
	trailer := make([]byte, 2)
	order.PutUint16(trailer, sum)
	buf.Write(trailer)

	return buf.Bytes()
}

// encode_header_only frames a record with Bytes_in_datagram at the minimum
// of 16: a bare header with zero body and no trailing bytes at all.
func encode_header_only(t *testing.T, order binary.ByteOrder, id DatagramID, model uint16, date, time_ms uint32) []byte {
	t.Helper()

	hdr := Header{
		Bytes_in_datagram: MIN_DATAGRAM_SIZE,
		Start_identifier:  STX,
		Datagram_type:     id,
		Em_model_number:   model,
		Date:              date,
		Time_ms:           time_ms,
		Counter:           1,
		Serial_number:     101,
	}

	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, order, &hdr))

	return buf.Bytes()
}

// break_checksum rewrites the trailing checksum so that it cannot verify,
// avoiding the tolerated zero value.
func break_checksum(rec []byte, order binary.ByteOrder) {
	computed := Checksum(rec[:HEADER_SIZE], rec[HEADER_SIZE:len(rec)-3])
	bogus := computed + 1
	if bogus == 0 {
		bogus++
	}
	order.PutUint16(rec[len(rec)-2:], bogus)
}

// test_stream concatenates framed records into a seekable byte source.
func test_stream(records ...[]byte) Stream {
	return bytes.NewReader(bytes.Join(records, nil))
}

// depth_payload builds a DEPTH body with the supplied beams.
func depth_payload(t *testing.T, order binary.ByteOrder, beams []DepthBeam) []byte {
	t.Helper()

	info := DepthInfo{
		Heading:       9000,
		Sound_speed:   15023,
		Max_beams:     uint8(len(beams)),
		Valid_beams:   uint8(len(beams)),
		Z_resolution:  1,
		XY_resolution: 1,
		Sampling_rate: 1402,
	}

	if len(beams) == 0 {
		return encode_blob(t, order, info)
	}

	return encode_blob(t, order, info, beams)
}

// closer_stream wraps a Stream and counts Close calls for the teardown
// tests.
type closer_stream struct {
	Stream
	closes int
}

func (c *closer_stream) Close() error {
	c.closes++
	return nil
}
