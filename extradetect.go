package emx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// The only EXTRA_DETECTIONS generation this decoder understands. Records
// carrying other versions or element sizes exist in the wild and are
// discarded rather than failing the stream.
const (
	EXTRA_DETECT_VERSION      uint16 = 1
	EXTRA_DETECT_CLASS_BYTES  uint16 = 16
	EXTRA_DETECT_DETECT_BYTES uint16 = 68
)

// ExtraDetectInfo is the fixed info block of the EXTRA_DETECTIONS datagram.
type ExtraDetectInfo struct {
	Datagram_version  uint16
	Heading           uint16  // 0.01deg
	Sound_speed       uint16  // dm/s
	Reference_depth   float32 // m
	Wc_sampling_rate  float32
	Amp_sampling_rate float32
	Num_detections    uint16
	Num_classes       uint16
	Nbytes_class      uint16
	Nalarm_flags      uint16
	Nbytes_detect     uint16
	Spare             [4]uint16
}

// ExtraDetectClass is one detection class descriptor.
type ExtraDetectClass struct {
	Start_depth     uint16 // % of depth
	Stop_depth      uint16 // % of depth
	Qf_threshold    uint16
	Bs_threshold    int16 // dB
	Snr_threshold   uint16
	Alarm_threshold uint16
	Num_detections  uint16
	Show_class      uint8
	Alarm_flag      uint8
}

// ExtraDetectData is one extra detection candidate.
type ExtraDetectData struct {
	Depth              float32
	Across_track       float32
	Along_track        float32
	Delta_latitude     float32
	Delta_longitude    float32
	Beam_angle         float32
	Angle_correction   float32
	Travel_time        float32
	Travel_time_corr   float32
	Qf_ifremer         float32
	Water_column_param float32
	Range              float32
	Backscatter        int16 // 0.1dB
	Beam_incidence     int16
	Detection_window   uint16
	Quality_factor     uint16
	Real_time_cleaning int16
	Class_number       uint16
	Confidence_level   uint16
	Detection_info     uint16
	Tx_sector          uint16
	Spare              uint16
}

// ExtraDetections is the decoded view of an EXTRA_DETECTIONS record.
type ExtraDetections struct {
	Info       ExtraDetectInfo
	Classes    []ExtraDetectClass
	Detections []ExtraDetectData
}

// DecodeExtraDetections carves an EXTRA_DETECTIONS body. Version and element
// size gates surface ErrUnsupported, which the decoder downgrades to a
// record discard.
func DecodeExtraDetections(buffer []byte, order binary.ByteOrder) (*ExtraDetections, error) {
	var extra ExtraDetections

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &extra.Info); err != nil {
		return nil, short_payload(EXTRA_DETECTIONS, err)
	}

	if extra.Info.Datagram_version != EXTRA_DETECT_VERSION ||
		extra.Info.Nbytes_class != EXTRA_DETECT_CLASS_BYTES ||
		extra.Info.Nbytes_detect != EXTRA_DETECT_DETECT_BYTES {
		return nil, errors.Join(ErrUnsupported,
			fmt.Errorf("EXTRA_DETECTIONS version %d class %d detect %d",
				extra.Info.Datagram_version, extra.Info.Nbytes_class,
				extra.Info.Nbytes_detect))
	}

	extra.Classes = make([]ExtraDetectClass, extra.Info.Num_classes)
	if err := binary.Read(reader, order, &extra.Classes); err != nil {
		return nil, short_payload(EXTRA_DETECTIONS, err)
	}

	extra.Detections = make([]ExtraDetectData, extra.Info.Num_detections)
	if err := binary.Read(reader, order, &extra.Detections); err != nil {
		return nil, short_payload(EXTRA_DETECTIONS, err)
	}

	return &extra, nil
}
