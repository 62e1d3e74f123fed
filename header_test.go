package emx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidDate(t *testing.T) {
	valid := []uint32{19700101, 20200101, 20201231, 20200229, 20000229, 20991231, 20790529}
	for _, date := range valid {
		require.True(t, valid_date(date), "date %d should be valid", date)
	}

	invalid := []uint32{
		0,        // zero is permitted in headers but is not itself a date
		19691231, // before the epoch window
		21000101, // past the window
		20201301, // month 13
		20200001, // month 0
		20200132, // day 32
		20200100, // day 0
		20210229, // 2021 is not a leap year
		19000229, // before the window (the century leap rule is not reached)
	}
	for _, date := range invalid {
		require.False(t, valid_date(date), "date %d should be invalid", date)
	}
}

func TestPalindromicDates(t *testing.T) {
	// the two excluded dates read the same under either byte order
	for _, date := range []uint32{20001025, 20790529} {
		raw := make([]byte, 4)
		binary.LittleEndian.PutUint32(raw, date)
		require.Equal(t, date, binary.BigEndian.Uint32(raw))
		require.True(t, palindromic_date(date))
	}

	require.False(t, palindromic_date(20200101))
}

func TestResolveByteOrderFromDate(t *testing.T) {
	le := encode_header_only(t, binary.LittleEndian, DEPTH, 2040, 20200101, 0)
	order, err := ResolveByteOrder(le)
	require.NoError(t, err)
	require.Equal(t, binary.ByteOrder(binary.LittleEndian), order)

	be := encode_header_only(t, binary.BigEndian, DEPTH, 2040, 20200101, 0)
	order, err = ResolveByteOrder(be)
	require.NoError(t, err)
	require.Equal(t, binary.ByteOrder(binary.BigEndian), order)
}

func TestResolveByteOrderModelFallback(t *testing.T) {
	// a palindromic date carries no signal; the model table decides
	le := encode_header_only(t, binary.LittleEndian, DEPTH, 2040, 20001025, 0)
	order, err := ResolveByteOrder(le)
	require.NoError(t, err)
	require.Equal(t, binary.ByteOrder(binary.LittleEndian), order)

	be := encode_header_only(t, binary.BigEndian, DEPTH, 2040, 20001025, 0)
	order, err = ResolveByteOrder(be)
	require.NoError(t, err)
	require.Equal(t, binary.ByteOrder(binary.BigEndian), order)

	// a zero date behaves the same
	le = encode_header_only(t, binary.LittleEndian, DEPTH, 710, 0, 0)
	order, err = ResolveByteOrder(le)
	require.NoError(t, err)
	require.Equal(t, binary.ByteOrder(binary.LittleEndian), order)
}

func TestResolveByteOrderFailure(t *testing.T) {
	// neither a plausible date nor a known model under either order
	raw := encode_header_only(t, binary.LittleEndian, DEPTH, 9999, 0, 0)
	_, err := ResolveByteOrder(raw)
	require.ErrorIs(t, err, ErrBadData)
}

func TestHeaderValidate(t *testing.T) {
	good := Header{
		Bytes_in_datagram: 31,
		Start_identifier:  STX,
		Datagram_type:     DEPTH,
		Em_model_number:   2040,
		Date:              20200101,
		Time_ms:           0,
	}
	require.NoError(t, good.Validate())

	hdr := good
	hdr.Start_identifier = 0x03
	require.ErrorIs(t, hdr.Validate(), ErrBadData)

	hdr = good
	hdr.Bytes_in_datagram = 15
	require.ErrorIs(t, hdr.Validate(), ErrBadData)

	hdr = good
	hdr.Bytes_in_datagram = MAX_DATAGRAM_SIZE + 1
	require.ErrorIs(t, hdr.Validate(), ErrBadData)

	hdr = good
	hdr.Time_ms = MAX_TIME_MS + 1
	require.ErrorIs(t, hdr.Validate(), ErrBadData)

	hdr = good
	hdr.Date = 20201301
	require.ErrorIs(t, hdr.Validate(), ErrBadData)

	// a zero date is fine
	hdr = good
	hdr.Date = 0
	require.NoError(t, hdr.Validate())

	// the minimum size is accepted structurally
	hdr = good
	hdr.Bytes_in_datagram = MIN_DATAGRAM_SIZE
	require.NoError(t, hdr.Validate())
}

func TestHeaderValidateUnknown2CarveOut(t *testing.T) {
	// the undocumented directory record carries garbage timestamps
	hdr := Header{
		Bytes_in_datagram: 100,
		Start_identifier:  STX,
		Datagram_type:     UNKNOWN2,
		Date:              12345678,
		Time_ms:           999_999_999,
	}
	require.NoError(t, hdr.Validate())
}

func TestHeaderBodySize(t *testing.T) {
	hdr := Header{Bytes_in_datagram: 31}
	require.Equal(t, uint32(15), hdr.BodySize())

	hdr.Bytes_in_datagram = MIN_DATAGRAM_SIZE
	require.Equal(t, uint32(0), hdr.BodySize())
}

func TestHeaderTimestamp(t *testing.T) {
	hdr := Header{Date: 20200315, Time_ms: 3_600_000}
	stamp := hdr.Timestamp()
	require.Equal(t, "2020-03-15T01:00:00Z", stamp.UTC().Format("2006-01-02T15:04:05Z"))

	hdr = Header{Date: 0, Time_ms: 500}
	require.Equal(t, int64(500_000_000), hdr.Timestamp().UnixNano())
}

func TestDecodeHeaderRoundTrip(t *testing.T) {
	raw := encode_header_only(t, binary.BigEndian, XYZ, 302, 20210601, 43_200_000)
	hdr := DecodeHeader(raw, binary.BigEndian)

	require.Equal(t, XYZ, hdr.Datagram_type)
	require.Equal(t, uint16(302), hdr.Em_model_number)
	require.Equal(t, uint32(20210601), hdr.Date)
	require.Equal(t, uint32(43_200_000), hdr.Time_ms)
	require.Equal(t, MIN_DATAGRAM_SIZE, hdr.Bytes_in_datagram)
}

func TestEm3000DSampleRate(t *testing.T) {
	rate, err := Em3000DSampleRate(3002, HEAD_PORT)
	require.NoError(t, err)
	require.Equal(t, uint32(13956), rate)

	rate, err = Em3000DSampleRate(3002, HEAD_STBD)
	require.NoError(t, err)
	require.Equal(t, uint32(14621), rate)

	rate, err = Em3000DSampleRate(3008, HEAD_PORT)
	require.NoError(t, err)
	require.Equal(t, uint32(14621), rate)

	rate, err = Em3000DSampleRate(3008, HEAD_STBD)
	require.NoError(t, err)
	require.Equal(t, uint32(13956), rate)

	_, err = Em3000DSampleRate(3000, HEAD_PORT)
	require.ErrorIs(t, err, ErrBadData)

	_, err = Em3000DSampleRate(3004, 3)
	require.ErrorIs(t, err, ErrBadData)
}
