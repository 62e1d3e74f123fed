package emx

import (
	"bytes"
	"encoding/binary"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// Stream caters for a generic reader type so that we can handle both
// a stream of data from a file on disk or object store, as well as
// an in-memory byte stream.
// This EMX module deals with either a *tiledb.VFSfh, a *bytes.Reader or a
// memory mapped region, and all we care about are two methods, Read and Seek,
// which all implement.
type Stream interface {
	Read(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
}

// Tell is a small helper function for telling the current position within a
// binary file opened for reading.
func Tell(stream Stream) (int64, error) {
	pos, err := stream.Seek(0, 1)

	return pos, err
}

// function to handle whether we build an in-memory byte stream or leave
// it as a stream handled by *tiledb.VFSfh
func GenericStream(stream *tiledb.VFSfh, size uint64, inmem bool) (Stream, error) {
	if inmem {
		buffer := make([]byte, size)
		err := binary.Read(stream, binary.BigEndian, &buffer)
		if err != nil {
			return nil, err
		}
		reader := bytes.NewReader(buffer)
		return reader, nil
	} else {
		return stream, nil
	}
}
