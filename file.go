package emx

import (
	"bytes"
	"encoding/binary"
	"os"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/edsrzf/mmap-go"
)

// EmxFile contains the relevant information for an opened EMX file to enable
// streamed reading.
type EmxFile struct {
	Uri      string
	filesize uint64
	config   *tiledb.Config
	ctx      *tiledb.Context
	vfs      *tiledb.VFS
	handler  *tiledb.VFSfh
	osfile   *os.File
	mapped   mmap.MMap
	closed   bool
	Stream
}

// OpenEmx opens an EMX file for streamed IO and constructs an EmxFile type.
// The URI can point at a local filesystem or an object store; a TileDB
// config is required for stores with permission constraints.
func OpenEmx(emx_uri string, config_uri string, in_memory bool) EmxFile {
	var (
		emx    EmxFile
		config *tiledb.Config
		err    error
	)

	emx.Uri = emx_uri

	// get a generic config if no path provided
	if config_uri == "" {
		config, err = tiledb.NewConfig()
		if err != nil {
			panic(err)
		}
	} else {
		config, err = tiledb.LoadConfig(config_uri)
		if err != nil {
			panic(err)
		}
	}

	emx.config = config

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		panic(err)
	}
	emx.ctx = ctx

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		panic(err)
	}
	emx.vfs = vfs

	handler, err := vfs.Open(emx_uri, tiledb.TILEDB_VFS_READ)
	if err != nil {
		panic(err)
	}
	emx.handler = handler

	filesize, _ := vfs.FileSize(emx_uri)
	emx.filesize = filesize

	// generic stream
	stream, err := GenericStream(handler, filesize, in_memory)
	if err != nil {
		panic(err)
	}

	emx.Stream = stream

	return emx
}

// OpenEmxMmap opens a plain local file through a memory mapping rather than
// the TileDB VFS. Useful when the whole file will be walked more than once.
func OpenEmxMmap(path string) (EmxFile, error) {
	var emx EmxFile

	emx.Uri = path

	f, err := os.Open(path)
	if err != nil {
		return emx, err
	}

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return emx, err
	}

	emx.osfile = f
	emx.mapped = mapped
	emx.filesize = uint64(len(mapped))
	emx.Stream = bytes.NewReader(mapped)

	return emx, nil
}

// Size is the size of the file in bytes.
func (e *EmxFile) Size() uint64 {
	return e.filesize
}

// Close releases the open file handler connections. Calling it twice is
// safe; the second call does nothing.
func (e *EmxFile) Close() {
	if e.closed {
		return
	}
	e.closed = true

	if e.handler != nil {
		e.handler.Close()
		e.vfs.Free()
		e.ctx.Free()
		e.config.Free()
	}

	if e.mapped != nil {
		_ = e.mapped.Unmap()
		e.osfile.Close()
	}
}

// Decoder constructs a DecoderState over the opened file.
func (e *EmxFile) Decoder(conf Config) *DecoderState {
	return NewDecoder(e.Stream, conf)
}

// Identification is the summary reported by Identify.
type Identification struct {
	Datagram_type DatagramID
	Datagram_name string
	Model         uint16
	Model_name    string
	Byte_order    string
}

// Identify peeks at the first record header of a stream and reports the
// model, byte order and datagram type without consuming the stream; the
// position is restored before returning.
func Identify(stream Stream) (Identification, error) {
	var (
		ident Identification
		raw   [HEADER_SIZE]byte
	)

	pos, err := Tell(stream)
	if err != nil {
		return ident, err
	}

	_, read_err := read_header(stream, raw[:])

	if _, err := stream.Seek(pos, 0); err != nil {
		return ident, err
	}

	if read_err != nil {
		return ident, read_err
	}

	order, err := ResolveByteOrder(raw[:])
	if err != nil {
		return ident, err
	}

	hdr := DecodeHeader(raw[:], order)

	ident.Datagram_type = hdr.Datagram_type
	ident.Datagram_name = hdr.Datagram_type.Name()
	ident.Model = hdr.Em_model_number
	ident.Model_name = ModelNames[hdr.Em_model_number]
	if order == binary.LittleEndian {
		ident.Byte_order = "LittleEndian"
	} else {
		ident.Byte_order = "BigEndian"
	}

	return ident, nil
}
