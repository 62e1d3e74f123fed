package emx

import (
	"bytes"
	"encoding/binary"
)

// Seabed83Info is the fixed info block of the SEABED_IMAGE_83 datagram.
type Seabed83Info struct {
	Mean_abs_coeff   uint16 // 0.01dB/km
	Pulse_length     uint16 // us
	Range_norm       uint16
	Start_tvg        uint16
	Stop_tvg         uint16
	Normal_incidence int8 // dB
	Oblique_bs       int8 // dB
	Tx_beamwidth     uint16
	Tvg_crossover    uint8
	Valid_beams      uint8
}

// Seabed83Beam describes the sample run contributed by one beam.
type Seabed83Beam struct {
	Beam_index        uint8
	Sorting_direction int8
	Num_samples       uint16
	Centre_sample     uint16
}

// Seabed83 is the decoded view of a SEABED_IMAGE_83 record. Samples holds
// one amplitude run per beam, in 0.5dB units.
type Seabed83 struct {
	Info    Seabed83Info
	Beams   []Seabed83Beam
	Samples [][]int8
}

func DecodeSeabed83(buffer []byte, order binary.ByteOrder) (*Seabed83, error) {
	var seabed Seabed83

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &seabed.Info); err != nil {
		return nil, short_payload(SEABED_IMAGE_83, err)
	}

	seabed.Beams = make([]Seabed83Beam, seabed.Info.Valid_beams)
	if err := binary.Read(reader, order, &seabed.Beams); err != nil {
		return nil, short_payload(SEABED_IMAGE_83, err)
	}

	seabed.Samples = make([][]int8, len(seabed.Beams))
	for i, beam := range seabed.Beams {
		run := make([]int8, beam.Num_samples)
		if err := binary.Read(reader, order, &run); err != nil {
			return nil, short_payload(SEABED_IMAGE_83, err)
		}
		seabed.Samples[i] = run
	}

	return &seabed, nil
}

// Seabed89Info is the fixed info block of the SEABED_IMAGE_89 datagram.
type Seabed89Info struct {
	Sampling_frequency float32
	Range_norm         uint16
	Normal_incidence   int16 // 0.1dB
	Oblique_bs         int16 // 0.1dB
	Tx_beamwidth       uint16
	Tvg_crossover      uint16
	Valid_beams        uint16
}

// Seabed89Beam describes the sample run contributed by one beam.
type Seabed89Beam struct {
	Sorting_direction int8
	Detection_info    uint8
	Num_samples       uint16
	Centre_sample     uint16
}

// Seabed89 is the decoded view of a SEABED_IMAGE_89 record. Samples holds
// one amplitude run per beam, in 0.1dB units.
type Seabed89 struct {
	Info    Seabed89Info
	Beams   []Seabed89Beam
	Samples [][]int16
}

func DecodeSeabed89(buffer []byte, order binary.ByteOrder) (*Seabed89, error) {
	var seabed Seabed89

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &seabed.Info); err != nil {
		return nil, short_payload(SEABED_IMAGE_89, err)
	}

	seabed.Beams = make([]Seabed89Beam, seabed.Info.Valid_beams)
	if err := binary.Read(reader, order, &seabed.Beams); err != nil {
		return nil, short_payload(SEABED_IMAGE_89, err)
	}

	seabed.Samples = make([][]int16, len(seabed.Beams))
	for i, beam := range seabed.Beams {
		run := make([]int16, beam.Num_samples)
		if err := binary.Read(reader, order, &run); err != nil {
			return nil, short_payload(SEABED_IMAGE_89, err)
		}
		seabed.Samples[i] = run
	}

	return &seabed, nil
}

// CentralBeamsInfo is the fixed info block of the CENTRAL_BEAMS datagram.
type CentralBeamsInfo struct {
	Mean_abs_coeff   uint16 // 0.01dB/km
	Pulse_length     uint16 // us
	Range_norm       uint16
	Start_tvg        uint16
	Stop_tvg         uint16
	Normal_incidence int16 // dB
	Sampling_rate    uint16
	Num_beams        uint16
}

// CentralBeamsData describes the echogram run of one central beam.
type CentralBeamsData struct {
	Beam_index  uint8
	Spare       int8
	Num_samples uint16
	Start_range uint16
}

// CentralBeams is the decoded view of a CENTRAL_BEAMS record. Samples holds
// one echogram run per beam, in 0.5dB units.
type CentralBeams struct {
	Info    CentralBeamsInfo
	Beams   []CentralBeamsData
	Samples [][]int8
}

func DecodeCentralBeams(buffer []byte, order binary.ByteOrder) (*CentralBeams, error) {
	var central CentralBeams

	reader := bytes.NewReader(buffer)
	if err := binary.Read(reader, order, &central.Info); err != nil {
		return nil, short_payload(CENTRAL_BEAMS, err)
	}

	central.Beams = make([]CentralBeamsData, central.Info.Num_beams)
	if err := binary.Read(reader, order, &central.Beams); err != nil {
		return nil, short_payload(CENTRAL_BEAMS, err)
	}

	central.Samples = make([][]int8, len(central.Beams))
	for i, beam := range central.Beams {
		run := make([]int8, beam.Num_samples)
		if err := binary.Read(reader, order, &run); err != nil {
			return nil, short_payload(CENTRAL_BEAMS, err)
		}
		central.Samples[i] = run
	}

	return &central, nil
}
