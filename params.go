package emx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// InstallParamsInfo is the fixed info block preceding the ASCII parameter
// text of the installation parameter datagrams.
type InstallParamsInfo struct {
	Secondary_serial uint16
}

// InstallParams is the decoded view of the INSTALL_PARAMS family and of
// REMOTE_PARAMS_INFO. Text is the raw ASCII payload; Params holds the
// parsed key/value pairs.
type InstallParams struct {
	Info   InstallParamsInfo
	Text   string
	Params map[string]interface{}
}

func DecodeInstallParams(buffer []byte, order binary.ByteOrder) (*InstallParams, error) {
	var install InstallParams

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &install.Info); err != nil {
		return nil, short_payload(INSTALL_PARAMS, err)
	}

	install.Text = string(buffer[binary.Size(install.Info):])
	install.Params = parse_ascii_params(install.Text)

	return &install, nil
}

// parse_ascii_params deciphers the comma separated "KEY=VALUE" text carried
// by the installation parameter datagrams.
// This text could contain pretty much anything, of any type. We'll try to
// detect as many types as possible and convert them from strings, with the
// intent on outputing the data as a json doc.
func parse_ascii_params(text string) map[string]interface{} {
	params := make(map[string]interface{})

	for _, field := range strings.Split(text, ",") {
		split := strings.SplitN(strings.TrimSpace(field), "=", 2)
		if len(split) != 2 || split[0] == "" {
			continue
		}

		// standardise keys (lowercase); strip padding and NUL chars
		key := strings.ToLower(split[0])
		val := strings.Trim(split[1], "\x00")

		if strings.Contains(val, ".") { // assumption on period being a decimal point
			fval, err := strconv.ParseFloat(val, 32)
			if err != nil {
				params[key] = val // string after all
			} else {
				params[key] = float32(fval)
			}
		} else { // most likely an integer or generic string
			ival, err := strconv.Atoi(val)
			if err != nil {
				params[key] = val
			} else {
				params[key] = ival
			}
		}
	}

	return params
}

// RuntimeParamsInfo is the whole body of the RUNTIME_PARAMS datagram: the
// operator chosen settings active when the ping was taken.
type RuntimeParamsInfo struct {
	Operator_station_status uint8
	Processing_unit_status  uint8
	Bsp_status              uint8
	Sonar_head_status       uint8
	Mode                    uint8
	Filter_id               uint8
	Min_depth               uint16 // m
	Max_depth               uint16 // m
	Absorption              uint16 // 0.01dB/km
	Tx_pulse_length         uint16 // us
	Tx_beamwidth            uint16 // 0.1deg
	Tx_power                int8   // dB
	Rx_beamwidth            uint8  // 0.1deg
	Rx_bandwidth            uint8  // 50 Hz
	Rx_fixed_gain           uint8  // dB
	Tvg_crossover           uint8  // deg
	Ssv_source              uint8
	Max_port_swath          uint16 // m
	Beam_spacing            uint8
	Max_port_coverage       uint8 // deg
	Yaw_pitch_stabilization uint8
	Max_stbd_coverage       uint8  // deg
	Max_stbd_swath          uint16 // m
	Tx_tilt                 int16  // 0.1deg
	Filter_id2              uint8
}

// RuntimeParams is the decoded view of a RUNTIME_PARAMS record.
type RuntimeParams struct {
	Info RuntimeParamsInfo
}

func DecodeRuntimeParams(buffer []byte, order binary.ByteOrder) (*RuntimeParams, error) {
	var runtime RuntimeParams

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &runtime.Info); err != nil {
		return nil, short_payload(RUNTIME_PARAMS, err)
	}

	return &runtime, nil
}

// ExtraParamsInfo is the fixed info block of the EXTRA_PARAMS datagram; the
// content field selects between six payload modes.
type ExtraParamsInfo struct {
	Content uint16
}

// The EXTRA_PARAMS content modes. Only the bscorr.txt text payload is
// decoded; the others have a known layout but have never been needed.
const (
	EXTRA_PARAMS_CAL_TXT     uint16 = 1
	EXTRA_PARAMS_LOG_ALL     uint16 = 2
	EXTRA_PARAMS_SOUND_SPEED uint16 = 3
	EXTRA_PARAMS_MULTICAST   uint16 = 4
	EXTRA_PARAMS_CBECHO      uint16 = 5
	EXTRA_PARAMS_BSCORR      uint16 = 6
)

// ExtraParams is the decoded view of an EXTRA_PARAMS record with content 6;
// Bscorr holds the bscorr.txt backscatter correction text.
type ExtraParams struct {
	Info   ExtraParamsInfo
	Bscorr string
}

func DecodeExtraParams(buffer []byte, order binary.ByteOrder) (*ExtraParams, error) {
	var extra ExtraParams

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &extra.Info); err != nil {
		return nil, short_payload(EXTRA_PARAMS, err)
	}

	switch content := extra.Info.Content; {
	case content == EXTRA_PARAMS_BSCORR:
		extra.Bscorr = string(buffer[binary.Size(extra.Info):])
	case content >= EXTRA_PARAMS_CAL_TXT && content <= EXTRA_PARAMS_CBECHO:
		return nil, errors.Join(ErrUnsupported,
			fmt.Errorf("EXTRA_PARAMS content %d is not decoded", content))
	default:
		return nil, errors.Join(ErrBadData,
			fmt.Errorf("EXTRA_PARAMS content %d out of range", content))
	}

	return &extra, nil
}
