package emx

import (
	"errors"
	"io"
)

// read_header pulls the next raw 20 byte header from the stream.
// A clean end of stream returns (0, io.EOF); anything between 1 and 19 bytes
// is a truncated record.
func read_header(stream Stream, raw []byte) (int, error) {
	n, err := io.ReadFull(stream, raw[:HEADER_SIZE])

	switch {
	case n == 0 && (err == io.EOF || err == nil):
		return 0, io.EOF
	case err == io.ErrUnexpectedEOF:
		return n, errors.Join(ErrBadData, errors.New("truncated header at end of stream"))
	case err != nil:
		return n, errors.Join(ErrRead, err)
	}

	return n, nil
}

// read_body fills buf with exactly len(buf) bytes of record body.
// A short read means the record was truncated mid-body.
func read_body(stream Stream, buf []byte) error {
	_, err := io.ReadFull(stream, buf)

	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return errors.Join(ErrBadData, errors.New("truncated record body"))
	case err != nil:
		return errors.Join(ErrRead, err)
	}

	return nil
}

// skip seeks forward over n bytes of body without reading them.
func skip(stream Stream, n uint32) error {
	_, err := stream.Seek(int64(n), io.SeekCurrent)
	if err != nil {
		return errors.Join(ErrSeek, err)
	}

	return nil
}

// grow sizes the decoder's record buffer for an n byte body. Growth
// reallocates to 1.5 times the requested size (rounded up) and discards the
// old contents; capacity never shrinks.
func (d *DecoderState) grow(n uint32) error {
	if n > MAX_DATAGRAM_SIZE {
		return errors.Join(ErrNoMemory, errors.New("record body exceeds the maximum datagram size"))
	}

	if uint32(cap(d.buffer)) >= n {
		d.buffer = d.buffer[:n]
		return nil
	}

	d.buffer = make([]byte, n, n+(n+1)/2)

	return nil
}
