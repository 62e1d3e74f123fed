package emx

import (
	"io"
	"time"
)

// RecordIndexEntry locates one decoded record within the file.
type RecordIndexEntry struct {
	Id         DatagramID
	Byte_index int64
	Datasize   uint32
	Counter    uint16
}

// FileInfo is the overarching structure containing basic info about an EMX
// file: location, size, model, resolved byte order, counts of each datagram
// type, a byte index of every record and the time extent of the stream.
type FileInfo struct {
	Uri             string
	Size            uint64
	Model           uint16
	Model_name      string
	Byte_order      string
	Record_counts   map[string]uint64
	Record_index    map[string][]RecordIndexEntry
	Start_timestamp time.Time
	End_timestamp   time.Time
}

// Info builds a file index of all datagram types as well as generic
// information and metadata such as model, byte order and record counts.
// The whole stream is decoded once; records that the decoder would discard
// (bad checksums, known-bad versions) are absent from the index.
func (e *EmxFile) Info(conf Config) (FileInfo, error) {
	var (
		finfo FileInfo
		first bool = true
	)

	finfo.Uri = e.Uri
	finfo.Size = e.filesize
	finfo.Record_counts = make(map[string]uint64)
	finfo.Record_index = make(map[string][]RecordIndexEntry)

	// get the original starting point so we can jump back when done
	original_pos, _ := Tell(e.Stream)
	_, _ = e.Stream.Seek(0, 0)

	decoder := NewDecoder(e.Stream, conf)

	for {
		rec, err := decoder.NextRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return finfo, err
		}

		name := rec.Id.Name()
		finfo.Record_counts[name]++
		finfo.Record_index[name] = append(finfo.Record_index[name], RecordIndexEntry{
			Id:         rec.Id,
			Byte_index: rec.Byte_index,
			Datasize:   rec.Header.Bytes_in_datagram,
			Counter:    rec.Header.Counter,
		})

		// UNKNOWN2 timestamps are garbage and would skew the extent
		if rec.Id == UNKNOWN2 {
			continue
		}

		stamp := rec.Header.Timestamp()
		if first {
			finfo.Model = rec.Header.Em_model_number
			finfo.Model_name = ModelNames[rec.Header.Em_model_number]
			finfo.Start_timestamp = stamp
			finfo.End_timestamp = stamp
			first = false
		}
		if stamp.Before(finfo.Start_timestamp) {
			finfo.Start_timestamp = stamp
		}
		if stamp.After(finfo.End_timestamp) {
			finfo.End_timestamp = stamp
		}
	}

	if order := decoder.ByteOrder(); order != nil {
		finfo.Byte_order = order.String()
	}

	// reset file position
	_, _ = e.Stream.Seek(original_pos, 0)

	return finfo, nil
}
