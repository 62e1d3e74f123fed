package emx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// sector_overflow is the shared gate on the transmit sector counters of the
// raw range datagrams and the water column datagram.
func sector_overflow(id DatagramID, sectors uint16) error {
	if sectors > MAX_TX_SECTORS {
		return errors.Join(ErrBadData,
			fmt.Errorf("%s record carries %d tx sectors; maximum is %d",
				id.Name(), sectors, MAX_TX_SECTORS))
	}

	return nil
}

// Rra70Info is the fixed info block of the oldest raw range datagram.
type Rra70Info struct {
	Num_beams   uint16
	Sound_speed uint16 // dm/s
}

// Rra70Beam is one receive beam of the RRA_70 datagram.
type Rra70Beam struct {
	Beam_angle   int16 // 0.01deg
	Tx_tilt      int16 // 0.01deg
	Range        uint16
	Reflectivity int8 // 0.5dB
	Beam_number  uint8
}

// Rra70 is the decoded view of an RRA_70 record.
type Rra70 struct {
	Info  Rra70Info
	Beams []Rra70Beam
}

func DecodeRra70(buffer []byte, order binary.ByteOrder) (*Rra70, error) {
	var rra Rra70

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &rra.Info); err != nil {
		return nil, short_payload(RRA_70, err)
	}

	rra.Beams = make([]Rra70Beam, rra.Info.Num_beams)
	if err := binary.Read(reader, order, &rra.Beams); err != nil {
		return nil, short_payload(RRA_70, err)
	}

	return &rra, nil
}

// Rra78Info is the fixed info block of the RRA_78 datagram.
type Rra78Info struct {
	Sound_speed        uint16 // dm/s
	Tx_sectors         uint16
	Rx_beams           uint16
	Valid_detections   uint16
	Sampling_frequency float32
	Dscale             uint32
}

// Rra78Tx is one transmit sector of the RRA_78 datagram.
type Rra78Tx struct {
	Tilt_angle       int16 // 0.01deg
	Focus_range      uint16
	Signal_length    float32
	Sector_tx_delay  float32
	Centre_frequency float32
	Mean_absorption  uint16
	Waveform_id      uint8
	Tx_sector_number uint8
	Signal_bandwidth float32
}

// Rra78Rx is one receive beam of the RRA_78 datagram.
type Rra78Rx struct {
	Beam_angle         int16 // 0.01deg
	Tx_sector_number   uint8
	Detection_info     uint8
	Detection_window   uint16
	Quality_factor     uint8
	Doppler_correction int8
	Travel_time        float32
	Reflectivity       int16 // 0.1dB
	Realtime_cleaning  int8
	Spare              uint8
}

// Rra78 is the decoded view of an RRA_78 record.
type Rra78 struct {
	Info Rra78Info
	Tx   []Rra78Tx
	Rx   []Rra78Rx
}

func DecodeRra78(buffer []byte, order binary.ByteOrder) (*Rra78, error) {
	var rra Rra78

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &rra.Info); err != nil {
		return nil, short_payload(RRA_78, err)
	}

	if err := sector_overflow(RRA_78, rra.Info.Tx_sectors); err != nil {
		return nil, err
	}

	rra.Tx = make([]Rra78Tx, rra.Info.Tx_sectors)
	if err := binary.Read(reader, order, &rra.Tx); err != nil {
		return nil, short_payload(RRA_78, err)
	}

	rra.Rx = make([]Rra78Rx, rra.Info.Rx_beams)
	if err := binary.Read(reader, order, &rra.Rx); err != nil {
		return nil, short_payload(RRA_78, err)
	}

	return &rra, nil
}

// Rra101Info is the fixed info block of the RRA_101 datagram.
type Rra101Info struct {
	Sound_speed        uint16 // dm/s
	Tx_sectors         uint16
	Rx_beams           uint16
	Valid_detections   uint16
	Sampling_frequency uint32 // 0.01 Hz
	Rov_depth          int32  // cm
	Sound_speed_tx     uint16 // dm/s at the transducer
	Max_beams          uint16
	Spare1             uint16
	Spare2             uint32
	Spare3             uint32
}

// Rra101Tx is one transmit sector of the RRA_101 datagram.
type Rra101Tx struct {
	Tilt_angle       int16  // 0.01deg
	Focus_range      uint16 // 0.1m
	Signal_length    uint16
	Sector_tx_delay  uint16
	Centre_frequency uint16
	Bandwidth        uint8
	Waveform_id      uint8
}

// Rra101Rx is one receive beam of the RRA_101 datagram.
type Rra101Rx struct {
	Beam_angle       int16 // 0.01deg
	Range            uint16
	Tx_sector_number uint8
	Reflectivity     int8 // 0.5dB
	Quality_factor   uint8
	Detection_window uint8
	Beam_number      int16
	Rx_heave         int16 // cm
	Spare            [2]uint16
}

// Rra101 is the decoded view of an RRA_101 record.
type Rra101 struct {
	Info Rra101Info
	Tx   []Rra101Tx
	Rx   []Rra101Rx
}

func DecodeRra101(buffer []byte, order binary.ByteOrder) (*Rra101, error) {
	var rra Rra101

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &rra.Info); err != nil {
		return nil, short_payload(RRA_101, err)
	}

	if err := sector_overflow(RRA_101, rra.Info.Tx_sectors); err != nil {
		return nil, err
	}

	rra.Tx = make([]Rra101Tx, rra.Info.Tx_sectors)
	if err := binary.Read(reader, order, &rra.Tx); err != nil {
		return nil, short_payload(RRA_101, err)
	}

	rra.Rx = make([]Rra101Rx, rra.Info.Rx_beams)
	if err := binary.Read(reader, order, &rra.Rx); err != nil {
		return nil, short_payload(RRA_101, err)
	}

	return &rra, nil
}

// Rra102Info is the fixed info block of the RRA_102 datagram.
type Rra102Info struct {
	Tx_sectors         uint16
	Rx_beams           uint16
	Sampling_frequency uint32 // 0.01 Hz
	Rov_depth          int32  // cm
	Sound_speed        uint16 // dm/s
	Max_beams          uint16
	Spare1             uint16
	Spare2             uint16
}

// Rra102Tx is one transmit sector of the RRA_102 datagram.
type Rra102Tx struct {
	Tilt_angle       int16  // 0.01deg
	Focus_range      uint16 // 0.1m
	Signal_length    uint32 // us
	Sector_tx_delay  uint32 // us
	Centre_frequency uint32 // Hz
	Bandwidth        uint16 // 10 Hz
	Waveform_id      uint8
	Tx_sector_number uint8
}

// Rra102Rx is one receive beam of the RRA_102 datagram.
type Rra102Rx struct {
	Beam_angle       int16 // 0.01deg
	Range            uint16
	Tx_sector_number uint8
	Reflectivity     int8 // 0.5dB
	Quality_factor   uint8
	Detection_window uint8
	Beam_number      int16
	Spare            uint16
}

// Rra102 is the decoded view of an RRA_102 record.
type Rra102 struct {
	Info Rra102Info
	Tx   []Rra102Tx
	Rx   []Rra102Rx
}

func DecodeRra102(buffer []byte, order binary.ByteOrder) (*Rra102, error) {
	var rra Rra102

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &rra.Info); err != nil {
		return nil, short_payload(RRA_102, err)
	}

	if err := sector_overflow(RRA_102, rra.Info.Tx_sectors); err != nil {
		return nil, err
	}

	rra.Tx = make([]Rra102Tx, rra.Info.Tx_sectors)
	if err := binary.Read(reader, order, &rra.Tx); err != nil {
		return nil, short_payload(RRA_102, err)
	}

	rra.Rx = make([]Rra102Rx, rra.Info.Rx_beams)
	if err := binary.Read(reader, order, &rra.Rx); err != nil {
		return nil, short_payload(RRA_102, err)
	}

	return &rra, nil
}
