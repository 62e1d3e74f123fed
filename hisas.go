package emx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// The HISAS family of records is produced in a fixed network order
// regardless of the byte order the rest of the stream was written in.

// channel_overflow is the shared gate on the channel counters of the
// sidescan records.
func channel_overflow(id DatagramID, channels uint32) error {
	if channels > MAX_SIDESCAN_CHANNELS {
		return errors.Join(ErrBadData,
			fmt.Errorf("%s record carries %d channels; maximum is %d",
				id.Name(), channels, MAX_SIDESCAN_CHANNELS))
	}

	return nil
}

// HisasStatusInfo is the whole body of the HISAS_STATUS datagram: the
// vehicle and sonar state broadcast of a HISAS carrier.
type HisasStatusInfo struct {
	Status_word uint32
	Mode        uint32
	Latitude    float64 // deg
	Longitude   float64 // deg
	Depth       float32 // m
	Altitude    float32 // m
	Speed       float32 // m/s
	Heading     float32 // deg
	Roll        float32 // deg
	Pitch       float32 // deg
	Heave       float32 // m
	Sound_speed float32 // m/s
	Range_port  float32 // m
	Range_stbd  float32 // m
	Spare       [9]uint32
}

// HisasStatus is the decoded view of a HISAS_STATUS record.
type HisasStatus struct {
	Info HisasStatusInfo
}

func DecodeHisasStatus(buffer []byte) (*HisasStatus, error) {
	var status HisasStatus

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, binary.BigEndian, &status.Info); err != nil {
		return nil, short_payload(HISAS_STATUS, err)
	}

	return &status, nil
}

// NavigationOutputInfo is the whole body of the NAVIGATION_OUTPUT datagram:
// the post processed navigation solution of the vehicle.
type NavigationOutputInfo struct {
	Seconds      uint32
	Microseconds uint32
	Latitude     float64 // deg
	Longitude    float64 // deg
	Depth        float32 // m
	Altitude     float32 // m
	Heading      float32 // deg
	Roll         float32 // deg
	Pitch        float32 // deg
	Speed_north  float32 // m/s
	Speed_east   float32 // m/s
	Speed_down   float32 // m/s
	Velocity     float32 // m/s
	Spare        [13]uint32
}

// NavigationOutput is the decoded view of a NAVIGATION_OUTPUT record.
type NavigationOutput struct {
	Info NavigationOutputInfo
}

func DecodeNavigationOutput(buffer []byte) (*NavigationOutput, error) {
	var nav NavigationOutput

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, binary.BigEndian, &nav.Info); err != nil {
		return nil, short_payload(NAVIGATION_OUTPUT, err)
	}

	return &nav, nil
}

// SidescanStatusInfo is the fixed info block of the SIDESCAN_STATUS
// datagram. The configuration text block is free form.
type SidescanStatusInfo struct {
	Num_channels uint8
	Sonar_config [1024]uint8
}

// SidescanStatusChannel describes one sidescan channel; Bytes_per_sample
// sets the sample width of subsequent HISAS_1032_SIDESCAN records.
type SidescanStatusChannel struct {
	Channel_id       uint32
	Sampling_rate    float32 // Hz
	Bytes_per_sample uint32
	Samples_per_ping uint32
	Centre_frequency float32 // Hz
	Bandwidth        float32 // Hz
	Tx_beamwidth     float32 // deg
	Rx_beamwidth     float32 // deg
	Spare            [24]uint32
}

// SidescanStatus is the decoded view of a SIDESCAN_STATUS record.
type SidescanStatus struct {
	Info     SidescanStatusInfo
	Channels []SidescanStatusChannel
}

func DecodeSidescanStatus(buffer []byte) (*SidescanStatus, error) {
	var status SidescanStatus

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, binary.BigEndian, &status.Info); err != nil {
		return nil, short_payload(SIDESCAN_STATUS, err)
	}

	if err := channel_overflow(SIDESCAN_STATUS, uint32(status.Info.Num_channels)); err != nil {
		return nil, err
	}

	status.Channels = make([]SidescanStatusChannel, status.Info.Num_channels)
	if err := binary.Read(reader, binary.BigEndian, &status.Channels); err != nil {
		return nil, short_payload(SIDESCAN_STATUS, err)
	}

	return &status, nil
}

// SidescanDataInfo is the fixed info block of the HISAS_1032_SIDESCAN
// datagram.
type SidescanDataInfo struct {
	Ping_counter uint32
	Seconds      uint32
	Microseconds uint32
	Num_channels uint32
	Latitude     float64 // deg
	Longitude    float64 // deg
	Speed        float32 // m/s
	Heading      float32 // deg
	Altitude     float32 // m
	Depth        float32 // m
	Spare        [52]uint32
}

// SidescanDataChannel is the per channel header preceding each channel's
// sample block.
type SidescanDataChannel struct {
	Channel_id  uint32
	Num_samples uint32
	Sample_rate float32 // Hz
	Range       float32 // m
	Gain        float32 // dB
	Spare       [11]uint32
}

// SidescanChannel is one decoded channel: its header, the sample width in
// bytes, and the raw network order sample block (Num_samples * width bytes)
// borrowed from the decoder's buffer.
type SidescanChannel struct {
	Info             SidescanDataChannel
	Bytes_per_sample uint32
	Samples          []byte
}

// SidescanData is the decoded view of a HISAS_1032_SIDESCAN record.
type SidescanData struct {
	Info     SidescanDataInfo
	Channels []SidescanChannel
}

// DecodeSidescanData carves a HISAS_1032_SIDESCAN body. The sample width
// per channel is not in the record; it comes from the most recent
// SIDESCAN_STATUS on the same stream. A stream without one cannot be
// decoded.
func DecodeSidescanData(buffer []byte, widths [MAX_SIDESCAN_CHANNELS]uint32) (*SidescanData, error) {
	var data SidescanData

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, binary.BigEndian, &data.Info); err != nil {
		return nil, short_payload(HISAS_1032_SIDESCAN, err)
	}

	if err := channel_overflow(HISAS_1032_SIDESCAN, data.Info.Num_channels); err != nil {
		return nil, err
	}

	data.Channels = make([]SidescanChannel, data.Info.Num_channels)
	for i := range data.Channels {
		channel := &data.Channels[i]

		if err := binary.Read(reader, binary.BigEndian, &channel.Info); err != nil {
			return nil, short_payload(HISAS_1032_SIDESCAN, err)
		}

		width := widths[i]
		switch width {
		case 2, 4, 8:
			// usable sample widths
		case 0:
			return nil, errors.Join(ErrBadData,
				fmt.Errorf("HISAS_1032_SIDESCAN channel %d has no SIDESCAN_STATUS width", i))
		default:
			return nil, errors.Join(ErrBadData,
				fmt.Errorf("HISAS_1032_SIDESCAN channel %d width %d bytes", i, width))
		}
		channel.Bytes_per_sample = width

		offset := len(buffer) - reader.Len()
		nbytes := int(channel.Info.Num_samples) * int(width)
		if reader.Len() < nbytes {
			return nil, short_payload(HISAS_1032_SIDESCAN, io.ErrUnexpectedEOF)
		}
		channel.Samples = buffer[offset : offset+nbytes]

		if _, err := reader.Seek(int64(nbytes), io.SeekCurrent); err != nil {
			return nil, short_payload(HISAS_1032_SIDESCAN, err)
		}
	}

	return &data, nil
}
