package emx

import (
	"errors"
	"fmt"
)

// Record is the typed view returned for each decoded datagram.
// Payload holds a pointer to the variant type selected by Id (Depth, Xyz,
// WaterColumn, ...), or *RawPayload for variants the decoder leaves packed.
// Raw, and the byte slices some payloads keep (RawPayload.Data, the packed
// water column beams and network attitude entries, sidescan samples), borrow
// the decoder's internal buffer and are valid only until the next NextRecord
// call on the same state; the other decoded arrays are separate copies.
type Record struct {
	Header     Header
	Id         DatagramID
	Byte_index int64
	Payload    any
	Raw        []byte
}

// RawPayload carries the unparsed body bytes of a record the decoder does
// not interpret; trailing ETX and checksum bytes are stripped.
type RawPayload struct {
	Id   DatagramID
	Data []byte
}

// payload_bytes strips the trailing ETX and checksum from the framed body.
// A zero body record has no trailing bytes at all.
func payload_bytes(body []byte) []byte {
	if len(body) < 3 {
		return body[:0]
	}
	return body[:len(body)-3]
}

// decode_payload carves the record body into the variant view for the
// datagram type. The bool result requests a silent discard of the record
// (known-bad version gates); errors are fatal to the stream.
func (d *DecoderState) decode_payload(hdr *Header) (any, bool, error) {
	buffer := payload_bytes(d.buffer)

	switch hdr.Datagram_type {
	case DEPTH:
		payload, err := DecodeDepth(buffer, d.order)
		return payload, false, err
	case DEPTH_NOMINAL:
		payload, err := DecodeDepthNominal(buffer, d.order)
		return payload, false, err
	case XYZ:
		payload, err := DecodeXyz(buffer, d.order)
		return payload, false, err
	case SINGLE_BEAM_DEPTH:
		payload, err := DecodeSingleBeamDepth(buffer, d.order)
		return payload, false, err
	case EXTRA_DETECTIONS:
		payload, err := DecodeExtraDetections(buffer, d.order)
		// known-bad versions in the wild are skipped, not fatal
		if err != nil && errors.Is(err, ErrUnsupported) {
			return nil, true, err
		}
		return payload, false, err
	case CENTRAL_BEAMS:
		payload, err := DecodeCentralBeams(buffer, d.order)
		return payload, false, err
	case RRA_70:
		payload, err := DecodeRra70(buffer, d.order)
		return payload, false, err
	case RRA_78:
		payload, err := DecodeRra78(buffer, d.order)
		return payload, false, err
	case RRA_101:
		payload, err := DecodeRra101(buffer, d.order)
		return payload, false, err
	case RRA_102:
		payload, err := DecodeRra102(buffer, d.order)
		return payload, false, err
	case SEABED_IMAGE_83:
		payload, err := DecodeSeabed83(buffer, d.order)
		return payload, false, err
	case SEABED_IMAGE_89:
		payload, err := DecodeSeabed89(buffer, d.order)
		return payload, false, err
	case WATER_COLUMN:
		payload, err := DecodeWaterColumn(buffer, d.order)
		return payload, false, err
	case QUALITY_FACTOR:
		payload, err := DecodeQualityFactor(buffer, d.order)
		return payload, false, err
	case ATTITUDE:
		payload, err := DecodeAttitude(buffer, d.order)
		return payload, false, err
	case ATTITUDE_NETWORK:
		payload, err := DecodeNetAttitude(buffer, d.order)
		return payload, false, err
	case CLOCK:
		payload, err := DecodeClock(buffer, d.order)
		return payload, false, err
	case HEIGHT:
		payload, err := DecodeHeight(buffer, d.order)
		return payload, false, err
	case HEADING:
		payload, err := DecodeHeading(buffer, d.order)
		return payload, false, err
	case POSITION:
		payload, err := DecodePosition(buffer, d.order)
		return payload, false, err
	case TIDE:
		payload, err := DecodeTide(buffer, d.order)
		return payload, false, err
	case SSSV:
		payload, err := DecodeSssv(buffer, d.order)
		return payload, false, err
	case SVP:
		payload, err := DecodeSvp(buffer, d.order)
		return payload, false, err
	case SVP_EM3000:
		payload, err := DecodeSvpEm3000(buffer, d.order)
		return payload, false, err
	case TRANSDUCER_TILT:
		payload, err := DecodeTransducerTilt(buffer, d.order)
		return payload, false, err
	case INSTALL_PARAMS, INSTALL_PARAMS_STOP, INSTALL_PARAMS_REMOTE, REMOTE_PARAMS_INFO:
		payload, err := DecodeInstallParams(buffer, d.order)
		return payload, false, err
	case RUNTIME_PARAMS:
		payload, err := DecodeRuntimeParams(buffer, d.order)
		return payload, false, err
	case EXTRA_PARAMS:
		payload, err := DecodeExtraParams(buffer, d.order)
		return payload, false, err
	case PU_OUTPUT:
		payload, err := DecodePuOutput(buffer, d.order)
		return payload, false, err
	case PU_STATUS:
		payload, err := DecodePuStatus(buffer, d.order)
		return payload, false, err
	case PU_BIST_RESULT:
		payload, err := DecodePuBistResult(buffer, d.order)
		return payload, false, err
	case HISAS_STATUS:
		payload, err := DecodeHisasStatus(buffer)
		return payload, false, err
	case NAVIGATION_OUTPUT:
		payload, err := DecodeNavigationOutput(buffer)
		return payload, false, err
	case SIDESCAN_STATUS:
		payload, err := DecodeSidescanStatus(buffer)
		if err == nil {
			// retain the per channel sample widths for subsequent
			// HISAS_1032_SIDESCAN records on this stream
			for i, channel := range payload.Channels {
				if i < MAX_SIDESCAN_CHANNELS {
					d.ss_width[i] = channel.Bytes_per_sample
				}
			}
		}
		return payload, false, err
	case HISAS_1032_SIDESCAN:
		payload, err := DecodeSidescanData(buffer, d.ss_width)
		return payload, false, err
	case KM_SSP_OUTPUT, RRA_123, STAVE, SYSTEM_STATUS, UNKNOWN2:
		return &RawPayload{Id: hdr.Datagram_type, Data: buffer}, false, nil
	}

	// unknown tags still surface the header and the raw bytes
	return &RawPayload{Id: hdr.Datagram_type, Data: buffer}, false, nil
}

// short_payload builds the standard error for a body that ends before its
// descriptors do.
func short_payload(id DatagramID, err error) error {
	return errors.Join(ErrBadData, fmt.Errorf("%s record body too short: %w", id.Name(), err))
}
