package emx

import (
	"bytes"
	"encoding/binary"
)

// DepthInfo is the fixed info block of the DEPTH datagram.
// Resolutions are in cm, the sound speed in dm/s and the heading in 0.01deg.
type DepthInfo struct {
	Heading          uint16
	Sound_speed      uint16
	Transducer_depth uint16
	Max_beams        uint8
	Valid_beams      uint8
	Z_resolution     uint8
	XY_resolution    uint8
	Sampling_rate    uint16
}

// DepthBeam is one sounding of the DEPTH datagram.
type DepthBeam struct {
	Depth            uint16
	Across_track     int16
	Along_track      int16
	Beam_depression  int16
	Beam_azimuth     uint16
	Range            uint16
	Quality_factor   uint8
	Detection_window uint8
	Reflectivity     int8
	Beam_number      uint8
}

// Depth is the decoded view of a DEPTH record.
type Depth struct {
	Info  DepthInfo
	Beams []DepthBeam
}

// DecodeDepth is the constructor for Depth. The number of soundings carried
// is given by the valid beams counter of the info block.
func DecodeDepth(buffer []byte, order binary.ByteOrder) (*Depth, error) {
	var depth Depth

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &depth.Info); err != nil {
		return nil, short_payload(DEPTH, err)
	}

	depth.Beams = make([]DepthBeam, depth.Info.Valid_beams)
	if err := binary.Read(reader, order, &depth.Beams); err != nil {
		return nil, short_payload(DEPTH, err)
	}

	return &depth, nil
}

// DepthNominalInfo is the fixed info block of the DEPTH_NOMINAL datagram.
type DepthNominalInfo struct {
	Num_beams          uint16
	Valid_detections   uint16
	Sampling_frequency float32
}

// DepthNominalBeam is one sounding given relative to the vessel, without
// attitude or raytrace corrections.
type DepthNominalBeam struct {
	Depth        float32
	Across_track float32
	Along_track  float32
	Reflectivity int16
}

// DepthNominal is the decoded view of a DEPTH_NOMINAL record.
type DepthNominal struct {
	Info  DepthNominalInfo
	Beams []DepthNominalBeam
}

func DecodeDepthNominal(buffer []byte, order binary.ByteOrder) (*DepthNominal, error) {
	var nominal DepthNominal

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &nominal.Info); err != nil {
		return nil, short_payload(DEPTH_NOMINAL, err)
	}

	nominal.Beams = make([]DepthNominalBeam, nominal.Info.Num_beams)
	if err := binary.Read(reader, order, &nominal.Beams); err != nil {
		return nil, short_payload(DEPTH_NOMINAL, err)
	}

	return &nominal, nil
}

// XyzInfo is the fixed info block of the XYZ datagram.
type XyzInfo struct {
	Heading            uint16
	Sound_speed        uint16
	Transducer_depth   float32
	Num_beams          uint16
	Valid_detections   uint16
	Sampling_frequency float32
	Scanning_info      uint8
	Spare              [3]uint8
}

// XyzBeam is one sounding of the XYZ datagram, in metres relative to the
// transmit transducer.
type XyzBeam struct {
	Depth               float32
	Across_track        float32
	Along_track         float32
	Detection_window    uint16
	Quality_factor      uint8
	Incidence_angle_adj int8
	Detection_info      uint8
	Realtime_cleaning   int8
	Reflectivity        int16
}

// Xyz is the decoded view of an XYZ record.
type Xyz struct {
	Info  XyzInfo
	Beams []XyzBeam
}

func DecodeXyz(buffer []byte, order binary.ByteOrder) (*Xyz, error) {
	var xyz Xyz

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &xyz.Info); err != nil {
		return nil, short_payload(XYZ, err)
	}

	xyz.Beams = make([]XyzBeam, xyz.Info.Num_beams)
	if err := binary.Read(reader, order, &xyz.Beams); err != nil {
		return nil, short_payload(XYZ, err)
	}

	return &xyz, nil
}

// SingleBeamDepthInfo is the whole body of the SINGLE_BEAM_DEPTH datagram.
// The echo sounder timestamp is carried separately from the record header.
type SingleBeamDepthInfo struct {
	Date    uint32
	Time_ms uint32
	Depth   uint32 // cm
	Source  uint8
}

// SingleBeamDepth is the decoded view of a SINGLE_BEAM_DEPTH record.
type SingleBeamDepth struct {
	Info SingleBeamDepthInfo
}

func DecodeSingleBeamDepth(buffer []byte, order binary.ByteOrder) (*SingleBeamDepth, error) {
	var sbd SingleBeamDepth

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &sbd.Info); err != nil {
		return nil, short_payload(SINGLE_BEAM_DEPTH, err)
	}

	return &sbd, nil
}
