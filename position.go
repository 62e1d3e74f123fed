package emx

import (
	"bytes"
	"encoding/binary"
	"io"
)

// PositionInfo is the fixed info block of the POSITION datagram.
// Latitude is in 5e-8 degrees (degrees * 20,000,000), longitude in 1e-7
// degrees (degrees * 10,000,000).
type PositionInfo struct {
	Latitude        int32
	Longitude       int32
	Fix_quality     uint16 // cm
	Speed           uint16 // cm/s
	Course          uint16 // 0.01deg
	Heading         uint16 // 0.01deg
	Position_system uint8
	Num_input_bytes uint8
}

// Position is the decoded view of a POSITION record. Input carries the raw
// datagram received from the positioning system, as bytes copied out of the
// decoder's buffer.
type Position struct {
	Info  PositionInfo
	Input []byte
}

// Latitude in degrees.
func (p *Position) Latitude() float64 {
	return float64(p.Info.Latitude) / 20_000_000.0
}

// Longitude in degrees.
func (p *Position) Longitude() float64 {
	return float64(p.Info.Longitude) / 10_000_000.0
}

func DecodePosition(buffer []byte, order binary.ByteOrder) (*Position, error) {
	var position Position

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &position.Info); err != nil {
		return nil, short_payload(POSITION, err)
	}

	position.Input = make([]byte, position.Info.Num_input_bytes)
	if _, err := io.ReadFull(reader, position.Input); err != nil {
		return nil, short_payload(POSITION, err)
	}

	return &position, nil
}

// ClockInfo is the whole body of the CLOCK datagram; the external clock
// reading alongside the header timestamp.
type ClockInfo struct {
	Date      uint32 // YYYYMMDD
	Time_ms   uint32
	Pps_input uint8
}

// Clock is the decoded view of a CLOCK record.
type Clock struct {
	Info ClockInfo
}

func DecodeClock(buffer []byte, order binary.ByteOrder) (*Clock, error) {
	var clock Clock

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &clock.Info); err != nil {
		return nil, short_payload(CLOCK, err)
	}

	return &clock, nil
}

// HeightInfo is the whole body of the HEIGHT datagram. The height is in cm;
// its meaning depends on Height_type (GGK/GGA derived, tide corrected, ...).
type HeightInfo struct {
	Height      int32
	Height_type uint8
}

// Height is the decoded view of a HEIGHT record.
type Height struct {
	Info HeightInfo
}

func DecodeHeight(buffer []byte, order binary.ByteOrder) (*Height, error) {
	var height Height

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &height.Info); err != nil {
		return nil, short_payload(HEIGHT, err)
	}

	return &height, nil
}

// TideInfo is the whole body of the TIDE datagram. The offset is in cm, the
// timestamp is when the tide value was observed.
type TideInfo struct {
	Date    uint32 // YYYYMMDD
	Time_ms uint32
	Tide    int16
	Spare   uint8
}

// Tide is the decoded view of a TIDE record.
type Tide struct {
	Info TideInfo
}

func DecodeTide(buffer []byte, order binary.ByteOrder) (*Tide, error) {
	var tide Tide

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &tide.Info); err != nil {
		return nil, short_payload(TIDE, err)
	}

	return &tide, nil
}
