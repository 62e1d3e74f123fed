package emx

import (
	"bytes"
	"encoding/binary"
)

// SvpInfo is the fixed info block of the SVP datagram. The timestamp is when
// the profile was observed; the header carries when it was applied.
type SvpInfo struct {
	Date             uint32 // YYYYMMDD
	Time_ms          uint32
	Num_entries      uint16
	Depth_resolution uint16 // cm
}

// SvpData is one profile point: depth in units of Depth_resolution, sound
// speed in dm/s.
type SvpData struct {
	Depth       uint32
	Sound_speed uint32
}

// Svp is the decoded view of an SVP record: the sound velocity profile
// used in estimating individual sounding locations.
type Svp struct {
	Info    SvpInfo
	Entries []SvpData
}

// DecodeSvp is the constructor for Svp by decoding an SVP record body.
func DecodeSvp(buffer []byte, order binary.ByteOrder) (*Svp, error) {
	var svp Svp

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &svp.Info); err != nil {
		return nil, short_payload(SVP, err)
	}

	svp.Entries = make([]SvpData, svp.Info.Num_entries)
	if err := binary.Read(reader, order, &svp.Entries); err != nil {
		return nil, short_payload(SVP, err)
	}

	return &svp, nil
}

// SvpEm3000Data is one profile point of the older EM3000 profile layout:
// depth and sound speed both in single dm units.
type SvpEm3000Data struct {
	Depth       uint16
	Sound_speed uint16
}

// SvpEm3000 is the decoded view of an SVP_EM3000 record. It shares the SVP
// info block; only the point layout differs.
type SvpEm3000 struct {
	Info    SvpInfo
	Entries []SvpEm3000Data
}

func DecodeSvpEm3000(buffer []byte, order binary.ByteOrder) (*SvpEm3000, error) {
	var svp SvpEm3000

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &svp.Info); err != nil {
		return nil, short_payload(SVP_EM3000, err)
	}

	svp.Entries = make([]SvpEm3000Data, svp.Info.Num_entries)
	if err := binary.Read(reader, order, &svp.Entries); err != nil {
		return nil, short_payload(SVP_EM3000, err)
	}

	return &svp, nil
}
