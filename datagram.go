package emx

import (
	"github.com/samber/lo"
)

// DatagramID is the single byte tag that selects the body layout of a record.
type DatagramID uint8

// Framing bytes and structural limits for a single datagram.
const (
	STX uint8 = 0x02
	ETX uint8 = 0x03

	// Bytes_in_datagram counts from the field following itself through the
	// checksum inclusive; the 16 byte minimum is a header with nothing else.
	MIN_DATAGRAM_SIZE uint32 = 16
	MAX_DATAGRAM_SIZE uint32 = 1 << 27

	MAX_TX_SECTORS        = 20
	MAX_SIDESCAN_CHANNELS = 6

	MAX_TIME_MS uint32 = 86_399_999
)

// Datagram type IDs. The values follow the EM convention of using the ASCII
// mnemonic for the documented types; RRA_70, RRA_78 etc are named by the
// decimal value of the tag byte.
const (
	PU_OUTPUT             DatagramID = 0x30 // '0'
	PU_STATUS             DatagramID = 0x31 // '1'
	EXTRA_PARAMS          DatagramID = 0x33 // '3'
	ATTITUDE              DatagramID = 0x41 // 'A'
	PU_BIST_RESULT        DatagramID = 0x42 // 'B'
	CLOCK                 DatagramID = 0x43 // 'C'
	DEPTH                 DatagramID = 0x44 // 'D'
	SINGLE_BEAM_DEPTH     DatagramID = 0x45 // 'E'
	RRA_70                DatagramID = 0x46 // 'F'
	SSSV                  DatagramID = 0x47 // 'G'
	HEADING               DatagramID = 0x48 // 'H'
	INSTALL_PARAMS        DatagramID = 0x49 // 'I'
	TRANSDUCER_TILT       DatagramID = 0x4A // 'J'
	CENTRAL_BEAMS         DatagramID = 0x4B // 'K'
	RRA_78                DatagramID = 0x4E // 'N'
	QUALITY_FACTOR        DatagramID = 0x4F // 'O'
	POSITION              DatagramID = 0x50 // 'P'
	RUNTIME_PARAMS        DatagramID = 0x52 // 'R'
	SEABED_IMAGE_83       DatagramID = 0x53 // 'S'
	TIDE                  DatagramID = 0x54 // 'T'
	SVP                   DatagramID = 0x55 // 'U'
	SVP_EM3000            DatagramID = 0x56 // 'V'
	KM_SSP_OUTPUT         DatagramID = 0x57 // 'W'
	XYZ                   DatagramID = 0x58 // 'X'
	SEABED_IMAGE_89       DatagramID = 0x59 // 'Y'
	DEPTH_NOMINAL         DatagramID = 0x64 // 'd'
	RRA_101               DatagramID = 0x65 // 'e'
	RRA_102               DatagramID = 0x66 // 'f'
	HEIGHT                DatagramID = 0x68 // 'h'
	INSTALL_PARAMS_STOP   DatagramID = 0x69 // 'i'
	WATER_COLUMN          DatagramID = 0x6B // 'k'
	EXTRA_DETECTIONS      DatagramID = 0x6C // 'l'
	STAVE                 DatagramID = 0x6D // 'm'
	ATTITUDE_NETWORK      DatagramID = 0x6E // 'n'
	NAVIGATION_OUTPUT     DatagramID = 0x6F // 'o'
	INSTALL_PARAMS_REMOTE DatagramID = 0x70 // 'p'
	SYSTEM_STATUS         DatagramID = 0x71 // 'q'
	REMOTE_PARAMS_INFO    DatagramID = 0x72 // 'r'
	UNKNOWN2              DatagramID = 0x74 // undocumented directory-like record
	SIDESCAN_STATUS       DatagramID = 0x75 // 'u'
	HISAS_1032_SIDESCAN   DatagramID = 0x76 // 'v'
	HISAS_STATUS          DatagramID = 0x78 // 'x'
	RRA_123               DatagramID = 0x7B // '{'
)

// Datagram labels. Used for report output and the file index.
var DatagramNames = map[DatagramID]string{
	PU_OUTPUT:             "PU_OUTPUT",
	PU_STATUS:             "PU_STATUS",
	EXTRA_PARAMS:          "EXTRA_PARAMS",
	ATTITUDE:              "ATTITUDE",
	PU_BIST_RESULT:        "PU_BIST_RESULT",
	CLOCK:                 "CLOCK",
	DEPTH:                 "DEPTH",
	SINGLE_BEAM_DEPTH:     "SINGLE_BEAM_DEPTH",
	RRA_70:                "RRA_70",
	SSSV:                  "SSSV",
	HEADING:               "HEADING",
	INSTALL_PARAMS:        "INSTALL_PARAMS",
	TRANSDUCER_TILT:       "TRANSDUCER_TILT",
	CENTRAL_BEAMS:         "CENTRAL_BEAMS",
	RRA_78:                "RRA_78",
	QUALITY_FACTOR:        "QUALITY_FACTOR",
	POSITION:              "POSITION",
	RUNTIME_PARAMS:        "RUNTIME_PARAMS",
	SEABED_IMAGE_83:       "SEABED_IMAGE_83",
	TIDE:                  "TIDE",
	SVP:                   "SVP",
	SVP_EM3000:            "SVP_EM3000",
	KM_SSP_OUTPUT:         "KM_SSP_OUTPUT",
	XYZ:                   "XYZ",
	SEABED_IMAGE_89:       "SEABED_IMAGE_89",
	DEPTH_NOMINAL:         "DEPTH_NOMINAL",
	RRA_101:               "RRA_101",
	RRA_102:               "RRA_102",
	HEIGHT:                "HEIGHT",
	INSTALL_PARAMS_STOP:   "INSTALL_PARAMS_STOP",
	WATER_COLUMN:          "WATER_COLUMN",
	EXTRA_DETECTIONS:      "EXTRA_DETECTIONS",
	STAVE:                 "STAVE",
	ATTITUDE_NETWORK:      "ATTITUDE_NETWORK",
	NAVIGATION_OUTPUT:     "NAVIGATION_OUTPUT",
	INSTALL_PARAMS_REMOTE: "INSTALL_PARAMS_REMOTE",
	SYSTEM_STATUS:         "SYSTEM_STATUS",
	REMOTE_PARAMS_INFO:    "REMOTE_PARAMS_INFO",
	UNKNOWN2:              "UNKNOWN2",
	SIDESCAN_STATUS:       "SIDESCAN_STATUS",
	HISAS_1032_SIDESCAN:   "HISAS_1032_SIDESCAN",
	HISAS_STATUS:          "HISAS_STATUS",
	RRA_123:               "RRA_123",
}

var InvDatagramNames = lo.Invert(DatagramNames)

// Name returns the label for a datagram type, or UNKNOWN for tags that have
// no entry in the table.
func (id DatagramID) Name() string {
	name, ok := DatagramNames[id]
	if !ok {
		return "UNKNOWN"
	}
	return name
}

// EM model numbers. A model number that decodes to one of these is also used
// as the fallback byte order signal when the header date carries none.
var ModelNames = map[uint16]string{
	120:   "EM120",
	121:   "EM121",
	122:   "EM122",
	124:   "EM124",
	300:   "EM300",
	302:   "EM302",
	710:   "EM710",
	712:   "EM712",
	850:   "ME70",
	1002:  "EM1002",
	2000:  "EM2000",
	2040:  "EM2040",
	2045:  "EM2040C",
	3000:  "EM3000",
	3002:  "EM3000D_2",
	3003:  "EM3000D_3",
	3004:  "EM3000D_4",
	3005:  "EM3000D_5",
	3006:  "EM3000D_6",
	3007:  "EM3000D_7",
	3008:  "EM3000D_8",
	3020:  "EM3002",
	11032: "HISAS_1032",
	11034: "HISAS_1034",
	12040: "EM2040P",
}

var InvModelNames = lo.Invert(ModelNames)

// Sonar head selectors for the dual headed EM3000D sub-series.
const (
	HEAD_PORT = 1
	HEAD_STBD = 2
)

// Sampling frequencies (Hz) for the EM3000D sub-series (models 3002..3008).
// The per head rate is not stored in the datagrams for these models.
var em3000d_port_rates = [7]uint32{13956, 13956, 14293, 13956, 14621, 14293, 14621}
var em3000d_stbd_rates = [7]uint32{14621, 14621, 14621, 14293, 14293, 13956, 13956}

// Em3000DSampleRate looks up the sampling frequency for an EM3000D model and
// sonar head (HEAD_PORT or HEAD_STBD).
// Models outside 3002..3008 or an unknown head return ErrBadData.
func Em3000DSampleRate(model uint16, head int) (uint32, error) {
	if model < 3002 || model > 3008 {
		return 0, ErrBadData
	}

	switch head {
	case HEAD_PORT:
		return em3000d_port_rates[model-3002], nil
	case HEAD_STBD:
		return em3000d_stbd_rates[model-3002], nil
	}

	return 0, ErrBadData
}
