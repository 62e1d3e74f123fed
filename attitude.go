package emx

import (
	"bytes"
	"encoding/binary"
	"io"
)

// AttitudeInfo is the fixed info block of the ATTITUDE datagram.
type AttitudeInfo struct {
	Num_entries uint16
}

// AttitudeData is one motion sample. Angles are in 0.01deg, heave in cm and
// the time in milliseconds since the record timestamp.
type AttitudeData struct {
	Time_ms       uint16
	Sensor_status uint16
	Roll          int16
	Pitch         int16
	Heave         int16
	Heading       uint16
}

// Attitude is the decoded view of an ATTITUDE record: the motion samples as
// reported by the vessel attitude sensor.
type Attitude struct {
	Info    AttitudeInfo
	Entries []AttitudeData
}

// DecodeAttitude is the constructor for Attitude by decoding an ATTITUDE
// record body.
func DecodeAttitude(buffer []byte, order binary.ByteOrder) (*Attitude, error) {
	var attitude Attitude

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &attitude.Info); err != nil {
		return nil, short_payload(ATTITUDE, err)
	}

	attitude.Entries = make([]AttitudeData, attitude.Info.Num_entries)
	if err := binary.Read(reader, order, &attitude.Entries); err != nil {
		return nil, short_payload(ATTITUDE, err)
	}

	return &attitude, nil
}

// NetAttitudeInfo is the fixed info block of the ATTITUDE_NETWORK datagram.
type NetAttitudeInfo struct {
	Num_entries       uint16
	System_descriptor int8
	Spare             uint8
}

// NetAttitudeDataInfo is the per entry info preceding each entry's raw
// sensor input bytes.
type NetAttitudeDataInfo struct {
	Time_ms         uint16
	Roll            int16
	Pitch           int16
	Heave           int16
	Heading         uint16
	Num_input_bytes uint8
}

// NetAttitudeEntry is one motion sample plus the raw datagram received from
// the motion sensor on the network.
type NetAttitudeEntry struct {
	Info  NetAttitudeDataInfo
	Input []byte
}

// NetAttitude is the decoded view of an ATTITUDE_NETWORK record.
// The entries are variable length and stay packed; walk them with Entries.
// The packed bytes borrow the decoder's buffer.
type NetAttitude struct {
	Info    NetAttitudeInfo
	entries []byte
	order   binary.ByteOrder
}

// DecodeNetAttitude carves an ATTITUDE_NETWORK body. The packed entries are
// walked once to verify they fit the body; decoding them is left to the
// caller via Entries.
func DecodeNetAttitude(buffer []byte, order binary.ByteOrder) (*NetAttitude, error) {
	var attitude NetAttitude

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &attitude.Info); err != nil {
		return nil, short_payload(ATTITUDE_NETWORK, err)
	}

	attitude.entries = buffer[len(buffer)-reader.Len():]
	attitude.order = order

	entries := attitude.Entries()
	for {
		_, err := entries.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return &attitude, nil
}

// Entries returns a fresh reader over the packed entries.
func (na *NetAttitude) Entries() *NetAttitudeReader {
	return &NetAttitudeReader{
		reader:    bytes.NewReader(na.entries),
		order:     na.order,
		remaining: na.Info.Num_entries,
	}
}

// NetAttitudeReader walks the packed entries of an ATTITUDE_NETWORK record,
// yielding one decoded entry per call.
type NetAttitudeReader struct {
	reader    *bytes.Reader
	order     binary.ByteOrder
	remaining uint16
}

// Next decodes the next entry, or io.EOF once the entry counter from the
// info block is exhausted.
func (r *NetAttitudeReader) Next() (*NetAttitudeEntry, error) {
	if r.remaining == 0 {
		return nil, io.EOF
	}
	r.remaining--

	var entry NetAttitudeEntry
	if err := binary.Read(r.reader, r.order, &entry.Info); err != nil {
		return nil, short_payload(ATTITUDE_NETWORK, err)
	}

	entry.Input = make([]byte, entry.Info.Num_input_bytes)
	if _, err := io.ReadFull(r.reader, entry.Input); err != nil {
		return nil, short_payload(ATTITUDE_NETWORK, err)
	}

	return &entry, nil
}

// HeadingInfo is the fixed info block of the HEADING datagram.
type HeadingInfo struct {
	Num_entries uint16
}

// HeadingData is one heading sample in 0.01deg, timed in milliseconds since
// the record timestamp.
type HeadingData struct {
	Time_ms uint16
	Heading uint16
}

// Heading is the decoded view of a HEADING record.
type Heading struct {
	Info    HeadingInfo
	Entries []HeadingData
}

func DecodeHeading(buffer []byte, order binary.ByteOrder) (*Heading, error) {
	var heading Heading

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &heading.Info); err != nil {
		return nil, short_payload(HEADING, err)
	}

	heading.Entries = make([]HeadingData, heading.Info.Num_entries)
	if err := binary.Read(reader, order, &heading.Entries); err != nil {
		return nil, short_payload(HEADING, err)
	}

	return &heading, nil
}

// TiltInfo is the fixed info block of the TRANSDUCER_TILT datagram.
type TiltInfo struct {
	Num_entries uint16
}

// TiltData is one tilt sample in 0.01deg, timed in milliseconds since the
// record timestamp.
type TiltData struct {
	Time_ms uint16
	Tilt    int16
}

// TransducerTilt is the decoded view of a TRANSDUCER_TILT record.
type TransducerTilt struct {
	Info    TiltInfo
	Entries []TiltData
}

func DecodeTransducerTilt(buffer []byte, order binary.ByteOrder) (*TransducerTilt, error) {
	var tilt TransducerTilt

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &tilt.Info); err != nil {
		return nil, short_payload(TRANSDUCER_TILT, err)
	}

	tilt.Entries = make([]TiltData, tilt.Info.Num_entries)
	if err := binary.Read(reader, order, &tilt.Entries); err != nil {
		return nil, short_payload(TRANSDUCER_TILT, err)
	}

	return &tilt, nil
}

// SssvInfo is the fixed info block of the SSSV datagram.
type SssvInfo struct {
	Num_entries uint16
}

// SssvData is one surface sound speed sample in dm/s, timed in milliseconds
// since the record timestamp.
type SssvData struct {
	Time_ms     uint16
	Sound_speed uint16
}

// Sssv is the decoded view of a surface sound speed record.
type Sssv struct {
	Info    SssvInfo
	Entries []SssvData
}

func DecodeSssv(buffer []byte, order binary.ByteOrder) (*Sssv, error) {
	var sssv Sssv

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &sssv.Info); err != nil {
		return nil, short_payload(SSSV, err)
	}

	sssv.Entries = make([]SssvData, sssv.Info.Num_entries)
	if err := binary.Read(reader, order, &sssv.Entries); err != nil {
		return nil, short_payload(SSSV, err)
	}

	return &sssv, nil
}
