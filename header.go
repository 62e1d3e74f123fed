package emx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// HEADER_SIZE is the fixed size of every datagram header in bytes.
const HEADER_SIZE = 20

// Header is the fixed leading block of every datagram.
// Bytes_in_datagram counts from the start identifier through the checksum
// inclusive, so the remainder of the record occupies
// Bytes_in_datagram + 4 - HEADER_SIZE bytes.
type Header struct {
	Bytes_in_datagram uint32
	Start_identifier  uint8
	Datagram_type     DatagramID
	Em_model_number   uint16
	Date              uint32 // YYYYMMDD; 0 permitted
	Time_ms           uint32 // milliseconds past midnight
	Counter           uint16
	Serial_number     uint16
}

// DecodeHeader interprets a raw 20 byte header with the given byte order.
func DecodeHeader(raw []byte, order binary.ByteOrder) Header {
	var hdr Header
	reader := bytes.NewReader(raw)
	_ = binary.Read(reader, order, &hdr)

	return hdr
}

// The two dates whose byte representation equals its own reversal; they
// carry no byte order signal. 20001025 = 0x01313101, 20790529 = 0x013D3D01.
func palindromic_date(date uint32) bool {
	return date == 20001025 || date == 20790529
}

// valid_date reports whether a YYYYMMDD value is a real Gregorian date
// within (19700000, 21000000).
func valid_date(date uint32) bool {
	if date <= 19700000 || date >= 21000000 {
		return false
	}

	year := int(date / 10000)
	month := int(date/100) % 100
	day := int(date % 100)

	if month < 1 || month > 12 {
		return false
	}

	days := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	limit := days[month-1]
	if month == 2 && julian.LeapYearGregorian(year) {
		limit = 29
	}

	return day >= 1 && day <= limit
}

// ResolveByteOrder decides the stream's byte order from a raw first header.
// The date field is the primary signal; a zero or palindromic date carries
// none, in which case a recognised model number decides. The chosen order is
// sticky for the lifetime of the stream.
func ResolveByteOrder(raw []byte) (binary.ByteOrder, error) {
	date := binary.LittleEndian.Uint32(raw[8:12])
	swapped := binary.BigEndian.Uint32(raw[8:12])

	if date != 0 && !palindromic_date(date) {
		if valid_date(date) {
			return binary.LittleEndian, nil
		}
		if valid_date(swapped) {
			return binary.BigEndian, nil
		}
		// neither reading is a date; the model number may still tell
	}

	model := binary.LittleEndian.Uint16(raw[6:8])
	if _, ok := ModelNames[model]; ok {
		return binary.LittleEndian, nil
	}

	model = binary.BigEndian.Uint16(raw[6:8])
	if _, ok := ModelNames[model]; ok {
		return binary.BigEndian, nil
	}

	return nil, errors.Join(ErrBadData, errors.New("unable to resolve byte order from first header"))
}

// Validate enforces the structural sanity checks on a decoded header.
// The UNKNOWN2 record is a directory-like record whose timestamp fields are
// garbage in the wild, so it skips the date and time checks.
func (h *Header) Validate() error {
	if h.Start_identifier != STX {
		return errors.Join(ErrBadData, errors.New("header start identifier is not STX"))
	}

	if h.Bytes_in_datagram < MIN_DATAGRAM_SIZE {
		return errors.Join(ErrBadData, errors.New("datagram size below minimum"))
	}

	if h.Bytes_in_datagram > MAX_DATAGRAM_SIZE {
		return errors.Join(ErrBadData, errors.New("datagram size above maximum"))
	}

	if h.Datagram_type != UNKNOWN2 {
		if h.Time_ms > MAX_TIME_MS {
			return errors.Join(ErrBadData, errors.New("header time past midnight"))
		}
		if h.Date != 0 && !valid_date(h.Date) {
			return errors.Join(ErrBadData, errors.New("header date is not a valid Gregorian date"))
		}
	}

	return nil
}

// BodySize is the number of bytes following the header, trailing ETX and
// checksum included.
func (h *Header) BodySize() uint32 {
	return h.Bytes_in_datagram + 4 - HEADER_SIZE
}

// Timestamp combines the Date and Time_ms fields into a UTC time.
// A zero date yields the Unix epoch day.
func (h *Header) Timestamp() time.Time {
	year := int(h.Date / 10000)
	month := int(h.Date/100) % 100
	day := int(h.Date % 100)

	if h.Date == 0 {
		year, month, day = 1970, 1, 1
	}

	base := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	return base.Add(time.Duration(h.Time_ms) * time.Millisecond)
}
