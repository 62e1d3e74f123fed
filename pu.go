package emx

import (
	"bytes"
	"encoding/binary"
)

// PuOutputInfo is the whole body of the PU_OUTPUT datagram: the processing
// unit identity broadcast on startup.
type PuOutputInfo struct {
	Byte_order_flag   uint16
	System_descriptor uint32
	Pu_software       [16]uint8
	Bsp_software      [16]uint8
	Head1_software    [16]uint8
	Head2_software    [16]uint8
	Host_ip           uint32
	Tx_opening_angle  uint8
	Rx_opening_angle  uint8
	Spare             [12]uint8
}

// PuOutput is the decoded view of a PU_OUTPUT record.
type PuOutput struct {
	Info PuOutputInfo
}

func DecodePuOutput(buffer []byte, order binary.ByteOrder) (*PuOutput, error) {
	var pu PuOutput

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &pu.Info); err != nil {
		return nil, short_payload(PU_OUTPUT, err)
	}

	return &pu, nil
}

// PuStatusInfo is the whole body of the PU_STATUS datagram: the one second
// health broadcast of the processing unit.
type PuStatusInfo struct {
	Ping_rate                uint16 // 0.01 Hz
	Ping_counter             uint16
	Swath_distance           uint32
	Sensor_status            uint32
	Pps_status               uint8
	Position_status          uint8
	Attitude_status          uint8
	Clock_status             uint8
	Heading_status           uint8
	Pu_status                uint8
	Last_heading             uint16 // 0.01deg
	Last_roll                int16  // 0.01deg
	Last_pitch               int16  // 0.01deg
	Last_heave               int16  // cm
	Sound_speed              uint16 // dm/s
	Last_depth               uint32 // cm
	Velocity                 int16  // cm/s
	Attitude_velocity_status uint8
	Mammal_ramp              uint8
	Backscatter_oblique      int8 // dB
	Backscatter_normal       int8 // dB
	Fixed_gain               int8 // dB
	Depth_normal_incidence   uint8
	Range_normal_incidence   uint16
	Port_coverage            uint8 // deg
	Stbd_coverage            uint8 // deg
	Sound_speed_profile      uint16
	Yaw_stabilization        int16 // 0.01deg
	Spare                    [10]uint16
	Cpu_load                 uint8
}

// PuStatus is the decoded view of a PU_STATUS record.
type PuStatus struct {
	Info PuStatusInfo
}

func DecodePuStatus(buffer []byte, order binary.ByteOrder) (*PuStatus, error) {
	var pu PuStatus

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &pu.Info); err != nil {
		return nil, short_payload(PU_STATUS, err)
	}

	return &pu, nil
}

// PuBistInfo is the fixed info block preceding the ASCII result text of the
// PU_BIST_RESULT datagram.
type PuBistInfo struct {
	Test_number uint16
	Test_status int16
}

// PuBistResult is the decoded view of a PU_BIST_RESULT record: one built in
// self test result with its report text.
type PuBistResult struct {
	Info PuBistInfo
	Text string
}

func DecodePuBistResult(buffer []byte, order binary.ByteOrder) (*PuBistResult, error) {
	var bist PuBistResult

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &bist.Info); err != nil {
		return nil, short_payload(PU_BIST_RESULT, err)
	}

	bist.Text = string(buffer[binary.Size(bist.Info):])

	return &bist, nil
}
