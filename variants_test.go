package emx

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDepthBeams(t *testing.T) {
	beams := []DepthBeam{
		{Depth: 4500, Across_track: -120, Beam_number: 0},
		{Depth: 4510, Across_track: 130, Beam_number: 1},
		{Depth: 4490, Across_track: 260, Beam_number: 2},
	}
	payload := depth_payload(t, binary.BigEndian, beams)

	depth, err := DecodeDepth(payload, binary.BigEndian)
	require.NoError(t, err)
	require.Len(t, depth.Beams, 3)
	require.Equal(t, beams, depth.Beams)
}

func TestDecodeDepthShortBody(t *testing.T) {
	payload := depth_payload(t, binary.BigEndian, []DepthBeam{{Depth: 4500}})

	_, err := DecodeDepth(payload[:20], binary.BigEndian)
	require.ErrorIs(t, err, ErrBadData)
}

func TestDecodeXyz(t *testing.T) {
	info := XyzInfo{
		Heading:          18000,
		Sound_speed:      15001,
		Transducer_depth: 5.5,
		Num_beams:        2,
		Valid_detections: 2,
	}
	beams := []XyzBeam{
		{Depth: 1001.5, Across_track: -300.25, Along_track: 2.0, Reflectivity: -220},
		{Depth: 1002.0, Across_track: 298.75, Along_track: -1.5, Reflectivity: -210},
	}

	payload := encode_blob(t, binary.LittleEndian, info, beams)
	xyz, err := DecodeXyz(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, info, xyz.Info)
	require.Equal(t, beams, xyz.Beams)
}

func TestDecodeRra78(t *testing.T) {
	info := Rra78Info{
		Sound_speed:        15023,
		Tx_sectors:         2,
		Rx_beams:           3,
		Valid_detections:   3,
		Sampling_frequency: 13956.0,
	}
	tx := []Rra78Tx{
		{Tilt_angle: -100, Centre_frequency: 300000, Tx_sector_number: 0},
		{Tilt_angle: 100, Centre_frequency: 310000, Tx_sector_number: 1},
	}
	rx := []Rra78Rx{
		{Beam_angle: -6000, Travel_time: 0.21, Tx_sector_number: 0, Reflectivity: -330},
		{Beam_angle: 0, Travel_time: 0.15, Tx_sector_number: 1, Reflectivity: -310},
		{Beam_angle: 6000, Travel_time: 0.22, Tx_sector_number: 1, Reflectivity: -350},
	}

	payload := encode_blob(t, binary.LittleEndian, info, tx, rx)
	rra, err := DecodeRra78(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, info, rra.Info)
	require.Equal(t, tx, rra.Tx)
	require.Equal(t, rx, rra.Rx)
}

func TestDecodeRra78SectorBound(t *testing.T) {
	payload := encode_blob(t, binary.LittleEndian, Rra78Info{Tx_sectors: 21})
	_, err := DecodeRra78(payload, binary.LittleEndian)
	require.ErrorIs(t, err, ErrBadData)

	// 20 sectors is within bounds
	info := Rra78Info{Tx_sectors: 20}
	payload = encode_blob(t, binary.LittleEndian, info, make([]Rra78Tx, 20))
	rra, err := DecodeRra78(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, rra.Tx, 20)
}

func TestDecodeSeabed83(t *testing.T) {
	info := Seabed83Info{Valid_beams: 2, Oblique_bs: -20, Normal_incidence: -10}
	beams := []Seabed83Beam{
		{Beam_index: 0, Sorting_direction: -1, Num_samples: 3, Centre_sample: 1},
		{Beam_index: 1, Sorting_direction: 1, Num_samples: 2, Centre_sample: 1},
	}
	payload := encode_blob(t, binary.LittleEndian, info, beams,
		[]int8{-10, -11, -12}, []int8{-20, -21})

	seabed, err := DecodeSeabed83(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, seabed.Samples, 2)
	require.Equal(t, []int8{-10, -11, -12}, seabed.Samples[0])
	require.Equal(t, []int8{-20, -21}, seabed.Samples[1])
}

func TestDecodeSeabed89(t *testing.T) {
	info := Seabed89Info{Sampling_frequency: 13956.0, Valid_beams: 1}
	beams := []Seabed89Beam{
		{Sorting_direction: -1, Detection_info: 0, Num_samples: 4, Centre_sample: 2},
	}
	payload := encode_blob(t, binary.BigEndian, info, beams, []int16{-100, -110, -120, -130})

	seabed, err := DecodeSeabed89(payload, binary.BigEndian)
	require.NoError(t, err)
	require.Len(t, seabed.Samples, 1)
	require.Equal(t, []int16{-100, -110, -120, -130}, seabed.Samples[0])
}

func TestWaterColumnBeamIterator(t *testing.T) {
	payload := wc_payload(t, binary.LittleEndian, 2)

	wc, err := DecodeWaterColumn(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, wc.Tx, 1)

	// walking yields exactly the advertised beams, each fully decoded
	beams := wc.Beams()
	count := 0
	for {
		beam, err := beams.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.Equal(t, uint8(count), beam.Info.Beam_number)
		require.Equal(t, []int8{-1, -2, -3}, beam.Samples)
		count++
	}
	require.Equal(t, 2, count)

	// a fresh reader starts over
	beam, err := wc.Beams().Next()
	require.NoError(t, err)
	require.Equal(t, uint8(0), beam.Info.Beam_number)
}

func TestWaterColumnTruncatedBeams(t *testing.T) {
	payload := wc_payload(t, binary.LittleEndian, 2)

	// chop into the second beam's samples
	_, err := DecodeWaterColumn(payload[:len(payload)-2], binary.LittleEndian)
	require.ErrorIs(t, err, ErrBadData)
}

func TestNetAttitudeEntryIterator(t *testing.T) {
	payload := encode_blob(t, binary.LittleEndian,
		NetAttitudeInfo{Num_entries: 2, System_descriptor: 1},
		NetAttitudeDataInfo{Time_ms: 0, Roll: -55, Pitch: 120, Heave: -3, Heading: 9000, Num_input_bytes: 4},
		[]byte{0xAA, 0xBB, 0xCC, 0xDD},
		NetAttitudeDataInfo{Time_ms: 10, Roll: -54, Pitch: 121, Heave: -2, Heading: 9001, Num_input_bytes: 2},
		[]byte{0x01, 0x02},
	)

	attitude, err := DecodeNetAttitude(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, uint16(2), attitude.Info.Num_entries)

	entries := attitude.Entries()

	entry, err := entries.Next()
	require.NoError(t, err)
	require.Equal(t, int16(-55), entry.Info.Roll)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, entry.Input)

	entry, err = entries.Next()
	require.NoError(t, err)
	require.Equal(t, uint16(10), entry.Info.Time_ms)
	require.Equal(t, []byte{0x01, 0x02}, entry.Input)

	_, err = entries.Next()
	require.Equal(t, io.EOF, err)
}

func TestNetAttitudeTruncatedInput(t *testing.T) {
	payload := encode_blob(t, binary.LittleEndian,
		NetAttitudeInfo{Num_entries: 1},
		NetAttitudeDataInfo{Num_input_bytes: 10},
		[]byte{0x01, 0x02},
	)

	_, err := DecodeNetAttitude(payload, binary.LittleEndian)
	require.ErrorIs(t, err, ErrBadData)
}

func TestDecodeExtraDetections(t *testing.T) {
	info := ExtraDetectInfo{
		Datagram_version: 1,
		Num_detections:   2,
		Num_classes:      1,
		Nbytes_class:     16,
		Nbytes_detect:    68,
	}
	classes := []ExtraDetectClass{{Start_depth: 0, Stop_depth: 100, Num_detections: 2}}
	detections := []ExtraDetectData{
		{Depth: 1000.5, Across_track: -200.0, Qf_ifremer: 0.1, Class_number: 0},
		{Depth: 1001.0, Across_track: 205.0, Qf_ifremer: 0.2, Class_number: 0},
	}

	payload := encode_blob(t, binary.LittleEndian, info, classes, detections)
	extra, err := DecodeExtraDetections(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, classes, extra.Classes)
	require.Equal(t, detections, extra.Detections)
}

func TestExtraDetectionsVersionGateDiscards(t *testing.T) {
	bad_info := ExtraDetectInfo{
		Datagram_version: 2,
		Nbytes_class:     16,
		Nbytes_detect:    68,
	}
	bad := encode_record(t, binary.LittleEndian, EXTRA_DETECTIONS, 2040, 20200101, 0, 1,
		encode_blob(t, binary.LittleEndian, bad_info))

	good := encode_record(t, binary.LittleEndian, DEPTH, 2040, 20200101, 1000, 2,
		depth_payload(t, binary.LittleEndian, nil))

	// the record is discarded, not fatal
	decoder := NewDecoder(test_stream(bad, good), Config{})
	record, err := decoder.NextRecord()
	require.NoError(t, err)
	require.Equal(t, DEPTH, record.Id)
}

func TestQualityFactorNparGate(t *testing.T) {
	payload := encode_blob(t, binary.LittleEndian, QfInfo{Rx_beams: 2, Npar: 1},
		[]float32{3.5, 4.5})
	qf, err := DecodeQualityFactor(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, []float32{3.5, 4.5}, qf.Factors)

	payload = encode_blob(t, binary.LittleEndian, QfInfo{Rx_beams: 2, Npar: 2},
		[]float32{3.5, 4.5, 5.5, 6.5})
	_, err = DecodeQualityFactor(payload, binary.LittleEndian)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestDecodeExtraParams(t *testing.T) {
	text := "# bscorr\n30000 2 4\n-30.0 1.5\n"
	payload := encode_blob(t, binary.LittleEndian, ExtraParamsInfo{Content: 6}, []byte(text))

	extra, err := DecodeExtraParams(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, text, extra.Bscorr)

	// contents 1..5 have a known layout but are not decoded
	payload = encode_blob(t, binary.LittleEndian, ExtraParamsInfo{Content: 3}, []byte{0x00})
	_, err = DecodeExtraParams(payload, binary.LittleEndian)
	require.ErrorIs(t, err, ErrUnsupported)

	payload = encode_blob(t, binary.LittleEndian, ExtraParamsInfo{Content: 9})
	_, err = DecodeExtraParams(payload, binary.LittleEndian)
	require.ErrorIs(t, err, ErrBadData)
}

func TestDecodeInstallParams(t *testing.T) {
	text := "WLZ=4.95,SMH=123,OSN=em2040,DSV=2.11,"
	payload := encode_blob(t, binary.LittleEndian, InstallParamsInfo{Secondary_serial: 101}, []byte(text))

	install, err := DecodeInstallParams(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, uint16(101), install.Info.Secondary_serial)
	require.Equal(t, text, install.Text)

	require.Equal(t, float32(4.95), install.Params["wlz"])
	require.Equal(t, 123, install.Params["smh"])
	require.Equal(t, "em2040", install.Params["osn"])
	require.Equal(t, float32(2.11), install.Params["dsv"])
}

func TestDecodeRuntimeParams(t *testing.T) {
	info := RuntimeParamsInfo{
		Mode:            2,
		Min_depth:       5,
		Max_depth:       500,
		Absorption:      3012,
		Tx_pulse_length: 200,
		Tx_tilt:         -10,
		Filter_id2:      1,
	}
	payload := encode_blob(t, binary.BigEndian, info)

	runtime, err := DecodeRuntimeParams(payload, binary.BigEndian)
	require.NoError(t, err)
	require.Equal(t, info, runtime.Info)
}

func TestDecodeSvp(t *testing.T) {
	info := SvpInfo{Date: 20200101, Time_ms: 1000, Num_entries: 3, Depth_resolution: 1}
	entries := []SvpData{
		{Depth: 0, Sound_speed: 15020},
		{Depth: 1000, Sound_speed: 15015},
		{Depth: 2000, Sound_speed: 14990},
	}
	payload := encode_blob(t, binary.LittleEndian, info, entries)

	svp, err := DecodeSvp(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, entries, svp.Entries)

	// the older EM3000 layout shares the info block
	em3000_entries := []SvpEm3000Data{{Depth: 0, Sound_speed: 1502}, {Depth: 10, Sound_speed: 1500}}
	info.Num_entries = 2
	payload = encode_blob(t, binary.LittleEndian, info, em3000_entries)

	em3000, err := DecodeSvpEm3000(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, em3000_entries, em3000.Entries)
}

func TestDecodePosition(t *testing.T) {
	info := PositionInfo{
		Latitude:        -638_123_456,
		Longitude:       1_445_123_456,
		Speed:           310,
		Num_input_bytes: 5,
	}
	payload := encode_blob(t, binary.LittleEndian, info, []byte("GPGGA"))

	position, err := DecodePosition(payload, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, []byte("GPGGA"), position.Input)
	require.InDelta(t, -31.9061728, position.Latitude(), 1e-7)
	require.InDelta(t, 144.5123456, position.Longitude(), 1e-7)
}

func TestDecodeHisasStatus(t *testing.T) {
	info := HisasStatusInfo{
		Status_word: 0x0001,
		Latitude:    -32.5,
		Longitude:   115.75,
		Depth:       150.0,
		Altitude:    25.0,
		Sound_speed: 1502.5,
	}
	payload := encode_blob(t, binary.BigEndian, info)

	status, err := DecodeHisasStatus(payload)
	require.NoError(t, err)
	require.Equal(t, info, status.Info)
}

func TestDecodeNavigationOutput(t *testing.T) {
	info := NavigationOutputInfo{
		Seconds:   1_600_000_000,
		Latitude:  -32.25,
		Longitude: 115.5,
		Depth:     180.5,
		Heading:   271.25,
	}
	payload := encode_blob(t, binary.BigEndian, info)

	nav, err := DecodeNavigationOutput(payload)
	require.NoError(t, err)
	require.Equal(t, info, nav.Info)
}

func TestSidescanChannelBound(t *testing.T) {
	payload := encode_blob(t, binary.BigEndian, SidescanStatusInfo{Num_channels: 7})
	_, err := DecodeSidescanStatus(payload)
	require.ErrorIs(t, err, ErrBadData)

	payload = encode_blob(t, binary.BigEndian, SidescanDataInfo{Num_channels: 7})
	_, err = DecodeSidescanData(payload, [MAX_SIDESCAN_CHANNELS]uint32{})
	require.ErrorIs(t, err, ErrBadData)
}

func TestSidescanOddWidthRejected(t *testing.T) {
	payload := encode_blob(t, binary.BigEndian,
		SidescanDataInfo{Num_channels: 1},
		SidescanDataChannel{Num_samples: 1},
		[]byte{0x01, 0x02, 0x03},
	)

	widths := [MAX_SIDESCAN_CHANNELS]uint32{3}
	_, err := DecodeSidescanData(payload, widths)
	require.ErrorIs(t, err, ErrBadData)
}
