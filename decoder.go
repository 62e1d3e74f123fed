package emx

import (
	"encoding/binary"
	"io"
	"log"
)

// Config carries the per stream policy knobs, set at construction.
type Config struct {
	// Skip WATER_COLUMN bodies without reading or validating them.
	Ignore_wc bool
	// Tolerate checksum mismatches instead of discarding the record.
	Ignore_checksum bool
	// Gating level for diagnostic events; 0 is silent.
	Debug_level int
}

// DecoderState holds everything needed to stream one EMX file: the byte
// source, the resolved byte order, the reusable record buffer and the
// retained cross-record state. It is not shareable across goroutines;
// independent files get independent states.
type DecoderState struct {
	stream   Stream
	conf     Config
	order    binary.ByteOrder
	resolved bool
	buffer   []byte
	hdr_raw  [HEADER_SIZE]byte
	// bytes per sample for each sidescan channel, taken from the most
	// recent SIDESCAN_STATUS record on this stream
	ss_width [MAX_SIDESCAN_CHANNELS]uint32
	err      error
	eos      bool
	closed   bool
}

// NewDecoder constructs a DecoderState over an opened byte source.
// The stream position is taken as the start of the record sequence.
func NewDecoder(stream Stream, conf Config) *DecoderState {
	return &DecoderState{stream: stream, conf: conf}
}

// ByteOrder reports the stream byte order resolved from the first header,
// or nil before the first record has been read.
func (d *DecoderState) ByteOrder() binary.ByteOrder {
	if !d.resolved {
		return nil
	}
	return d.order
}

// Close releases the byte source when it owns a closable handle.
// Closing is safe in any state, including after an error, and a second call
// is a no-op.
func (d *DecoderState) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if closer, ok := d.stream.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// fail pins the state machine in its error state; every subsequent call
// returns the same error until teardown.
func (d *DecoderState) fail(err error) error {
	d.err = err
	return err
}

func (d *DecoderState) debugf(level int, format string, args ...any) {
	if d.conf.Debug_level >= level {
		log.Printf(format, args...)
	}
}

// NextRecord decodes and returns the next record on the stream.
// Records that fail checksum verification (unless configured otherwise) and
// records with known-bad version gates are discarded and reading continues
// with the following record. io.EOF signals a clean end of stream.
//
// The returned record is a projection into the decoder's internal buffer and
// is valid only until the next call; copy out anything to be kept.
func (d *DecoderState) NextRecord() (*Record, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.eos || d.closed {
		return nil, io.EOF
	}

	for {
		byte_index, _ := Tell(d.stream)

		_, err := read_header(d.stream, d.hdr_raw[:])
		if err == io.EOF {
			d.eos = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, d.fail(err)
		}

		if !d.resolved {
			order, err := ResolveByteOrder(d.hdr_raw[:])
			if err != nil {
				return nil, d.fail(err)
			}
			d.order = order
			d.resolved = true
		}

		hdr := DecodeHeader(d.hdr_raw[:], d.order)
		if err := hdr.Validate(); err != nil {
			return nil, d.fail(err)
		}

		body_size := hdr.BodySize()

		if d.conf.Ignore_wc && hdr.Datagram_type == WATER_COLUMN {
			d.debugf(1, "emx: skipping WATER_COLUMN record at byte %d", byte_index)
			if err := skip(d.stream, body_size); err != nil {
				return nil, d.fail(err)
			}
			continue
		}

		if err := d.grow(body_size); err != nil {
			return nil, d.fail(err)
		}

		if err := read_body(d.stream, d.buffer); err != nil {
			return nil, d.fail(err)
		}

		if hdr.Datagram_type != UNKNOWN2 {
			if !verify_checksum(d.hdr_raw[:], d.buffer, d.order) {
				if !d.conf.Ignore_checksum {
					d.debugf(1, "emx: discarding %s record at byte %d; checksum mismatch",
						hdr.Datagram_type.Name(), byte_index)
					continue
				}
				d.debugf(1, "emx: checksum mismatch ignored for %s record at byte %d",
					hdr.Datagram_type.Name(), byte_index)
			}
		}

		payload, discard, err := d.decode_payload(&hdr)
		if discard {
			d.debugf(1, "emx: discarding %s record at byte %d; %v",
				hdr.Datagram_type.Name(), byte_index, err)
			continue
		}
		if err != nil {
			return nil, d.fail(err)
		}

		rec := &Record{
			Header:     hdr,
			Id:         hdr.Datagram_type,
			Byte_index: byte_index,
			Payload:    payload,
			Raw:        d.buffer,
		}

		return rec, nil
	}
}
