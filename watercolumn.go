package emx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// WcInfo is the fixed info block of the WATER_COLUMN datagram.
// A ping may be spread across several datagrams; Num_datagrams and
// Datagram_number describe the split, Num_beams the share carried here.
type WcInfo struct {
	Num_datagrams      uint16
	Datagram_number    uint16
	Tx_sectors         uint16
	Total_rx_beams     uint16
	Num_beams          uint16
	Sound_speed        uint16 // dm/s
	Sampling_frequency uint32 // 0.01 Hz
	Tx_time_heave      int16  // cm
	Tvg_function       uint8
	Tvg_offset         int8
	Scanning_info      uint8
	Spare              [3]uint8
}

// WcTx is one transmit sector of the WATER_COLUMN datagram.
type WcTx struct {
	Tilt_angle       int16  // 0.01deg
	Centre_frequency uint16 // 10 Hz
	Tx_sector_number uint8
	Spare            uint8
}

// WcRxInfo is the per beam info preceding each beam's sample run.
type WcRxInfo struct {
	Beam_angle       int16 // 0.01deg
	Start_range      uint16
	Num_samples      uint16
	Detected_range   uint16
	Tx_sector_number uint8
	Beam_number      uint8
}

// WcBeam is one receive beam with its amplitude samples in 0.5dB units.
type WcBeam struct {
	Info    WcRxInfo
	Samples []int8
}

// WaterColumn is the decoded view of a WATER_COLUMN record.
// The receive beams are variable length and stay packed; walk them with
// Beams. The packed bytes borrow the decoder's buffer.
type WaterColumn struct {
	Info  WcInfo
	Tx    []WcTx
	beams []byte
	order binary.ByteOrder
}

// DecodeWaterColumn carves a WATER_COLUMN body. The packed receive beams are
// walked once to verify they fit the body; decoding them is left to the
// caller via Beams.
func DecodeWaterColumn(buffer []byte, order binary.ByteOrder) (*WaterColumn, error) {
	var wc WaterColumn

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &wc.Info); err != nil {
		return nil, short_payload(WATER_COLUMN, err)
	}

	if err := sector_overflow(WATER_COLUMN, wc.Info.Tx_sectors); err != nil {
		return nil, err
	}

	wc.Tx = make([]WcTx, wc.Info.Tx_sectors)
	if err := binary.Read(reader, order, &wc.Tx); err != nil {
		return nil, short_payload(WATER_COLUMN, err)
	}

	wc.beams = buffer[len(buffer)-reader.Len():]
	wc.order = order

	// bounds check the packed beams before handing them out
	beams := wc.Beams()
	for {
		_, err := beams.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return &wc, nil
}

// Beams returns a fresh reader over the packed receive beams.
func (wc *WaterColumn) Beams() *WcBeamReader {
	return &WcBeamReader{
		reader:    bytes.NewReader(wc.beams),
		order:     wc.order,
		remaining: wc.Info.Num_beams,
	}
}

// WcBeamReader walks the packed receive beams of a WATER_COLUMN record,
// yielding one decoded beam per call.
type WcBeamReader struct {
	reader    *bytes.Reader
	order     binary.ByteOrder
	remaining uint16
}

// Next decodes the next receive beam, or io.EOF once the beam counter from
// the info block is exhausted.
func (r *WcBeamReader) Next() (*WcBeam, error) {
	if r.remaining == 0 {
		return nil, io.EOF
	}
	r.remaining--

	var beam WcBeam
	if err := binary.Read(r.reader, r.order, &beam.Info); err != nil {
		return nil, short_payload(WATER_COLUMN, err)
	}

	beam.Samples = make([]int8, beam.Info.Num_samples)
	if err := binary.Read(r.reader, r.order, &beam.Samples); err != nil {
		return nil, short_payload(WATER_COLUMN, err)
	}

	return &beam, nil
}

// QfInfo is the fixed info block of the QUALITY_FACTOR datagram.
type QfInfo struct {
	Rx_beams uint16
	Npar     uint16
}

// QualityFactor is the decoded view of a QUALITY_FACTOR record: one quality
// parameter per receive beam.
type QualityFactor struct {
	Info    QfInfo
	Factors []float32
}

// DecodeQualityFactor decodes a QUALITY_FACTOR body. Only single parameter
// records are in circulation; anything else is unsupported.
func DecodeQualityFactor(buffer []byte, order binary.ByteOrder) (*QualityFactor, error) {
	var qf QualityFactor

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &qf.Info); err != nil {
		return nil, short_payload(QUALITY_FACTOR, err)
	}

	if qf.Info.Npar != 1 {
		return nil, errors.Join(ErrUnsupported,
			errors.New("QUALITY_FACTOR record without exactly one parameter per beam"))
	}

	qf.Factors = make([]float32, qf.Info.Rx_beams)
	if err := binary.Read(reader, order, &qf.Factors); err != nil {
		return nil, short_payload(QUALITY_FACTOR, err)
	}

	return &qf, nil
}
