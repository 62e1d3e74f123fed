package emx

import (
	"errors"
	"io"
	"time"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// AttitudeSeries accumulates the motion samples of every ATTITUDE record on
// a stream into flat columns ready for serialisation.
type AttitudeSeries struct {
	Timestamp []time.Time `tiledb:"dtype=datetime_ns,ftype=attr" filters:"zstd(level=16)"`
	Roll      []float32   `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	Pitch     []float32   `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	Heave     []float32   `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	Heading   []float32   `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
}

// append_record unscales one ATTITUDE record into the series columns.
// Angles arrive in 0.01deg and heave in cm.
func (a *AttitudeSeries) append_record(hdr *Header, attitude *Attitude) {
	base := hdr.Timestamp()

	for _, entry := range attitude.Entries {
		offset := time.Duration(entry.Time_ms) * time.Millisecond
		a.Timestamp = append(a.Timestamp, base.Add(offset))
		a.Roll = append(a.Roll, float32(entry.Roll)/100.0)
		a.Pitch = append(a.Pitch, float32(entry.Pitch)/100.0)
		a.Heave = append(a.Heave, float32(entry.Heave)/100.0)
		a.Heading = append(a.Heading, float32(entry.Heading)/100.0)
	}
}

// PositionSeries accumulates every POSITION record on a stream into flat
// columns ready for serialisation.
type PositionSeries struct {
	Timestamp []time.Time `tiledb:"dtype=datetime_ns,ftype=attr" filters:"zstd(level=16)"`
	Longitude []float64   `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	Latitude  []float64   `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	Speed     []float32   `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	Course    []float32   `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	Heading   []float32   `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
}

func (p *PositionSeries) append_record(hdr *Header, position *Position) {
	p.Timestamp = append(p.Timestamp, hdr.Timestamp())
	p.Longitude = append(p.Longitude, position.Longitude())
	p.Latitude = append(p.Latitude, position.Latitude())
	p.Speed = append(p.Speed, float32(position.Info.Speed)/100.0)
	p.Course = append(p.Course, float32(position.Info.Course)/100.0)
	p.Heading = append(p.Heading, float32(position.Info.Heading)/100.0)
}

// CollectSeries decodes a whole stream and gathers the attitude and
// position records into their series forms.
func CollectSeries(decoder *DecoderState) (*AttitudeSeries, *PositionSeries, error) {
	attitude := &AttitudeSeries{}
	position := &PositionSeries{}

	for {
		rec, err := decoder.NextRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch payload := rec.Payload.(type) {
		case *Attitude:
			attitude.append_record(&rec.Header, payload)
		case *Position:
			position.append_record(&rec.Header, payload)
		}
	}

	return attitude, position, nil
}

// ToTileDB writes the attitude series to a dense TileDB array with row
// number as the queryable dimension.
// Column structure:
// [__tiledb_rows (dim), Timestamp, Roll, Pitch, Heave, Heading (attrs)].
func (a *AttitudeSeries) ToTileDB(file_uri string, ctx *tiledb.Context) error {
	nrows := uint64(len(a.Timestamp))
	if nrows == 0 {
		return errors.Join(ErrWriteAttitudeTdb, errors.New("no attitude records decoded"))
	}

	err := dense_row_array(file_uri, ctx, nrows, a)
	if err != nil {
		return errors.Join(ErrCreateAttitudeTdb, err)
	}

	// open the array for writing the attitude data
	array, err := ArrayOpenWrite(ctx, file_uri)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}
	defer array.Free()
	defer array.Close()

	// query construction
	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}
	defer query.Free()

	err = query.SetLayout(tiledb.TILEDB_ROW_MAJOR)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	temp_data := make([]int64, nrows)
	for i := uint64(0); i < nrows; i++ {
		temp_data[i] = a.Timestamp[i].UnixNano()
	}
	_, err = query.SetDataBuffer("Timestamp", temp_data)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	_, err = query.SetDataBuffer("Roll", a.Roll)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	_, err = query.SetDataBuffer("Pitch", a.Pitch)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	_, err = query.SetDataBuffer("Heave", a.Heave)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	_, err = query.SetDataBuffer("Heading", a.Heading)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	// define the subarray (dim coordinates that we'll write into)
	subarr, err := array.NewSubarray()
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}
	defer subarr.Free()

	rng := tiledb.MakeRange(uint64(0), nrows-uint64(1))
	subarr.AddRangeByName("__tiledb_rows", rng)
	err = query.SetSubarray(subarr)
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	// write the data flush
	err = query.Submit()
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	err = query.Finalize()
	if err != nil {
		return errors.Join(ErrWriteAttitudeTdb, err)
	}

	// attach some metadata to preserve python pandas functionality
	md := map[string]string{"__tiledb_rows": "uint64"}
	jsn, err := JsonDumps(md)
	if err != nil {
		return err
	}
	err = array.PutMetadata("__pandas_index_dims", jsn)

	return err
}

// ToTileDB writes the position series to a dense TileDB array with row
// number as the queryable dimension.
// Column structure:
// [__tiledb_rows (dim), Timestamp, Longitude, Latitude, Speed, Course,
// Heading (attrs)].
func (p *PositionSeries) ToTileDB(file_uri string, ctx *tiledb.Context) error {
	nrows := uint64(len(p.Timestamp))
	if nrows == 0 {
		return errors.Join(ErrWritePositionTdb, errors.New("no position records decoded"))
	}

	err := dense_row_array(file_uri, ctx, nrows, p)
	if err != nil {
		return errors.Join(ErrCreatePositionTdb, err)
	}

	array, err := ArrayOpenWrite(ctx, file_uri)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}
	defer array.Free()
	defer array.Close()

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}
	defer query.Free()

	err = query.SetLayout(tiledb.TILEDB_ROW_MAJOR)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	temp_data := make([]int64, nrows)
	for i := uint64(0); i < nrows; i++ {
		temp_data[i] = p.Timestamp[i].UnixNano()
	}
	_, err = query.SetDataBuffer("Timestamp", temp_data)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	_, err = query.SetDataBuffer("Longitude", p.Longitude)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	_, err = query.SetDataBuffer("Latitude", p.Latitude)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	_, err = query.SetDataBuffer("Speed", p.Speed)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	_, err = query.SetDataBuffer("Course", p.Course)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	_, err = query.SetDataBuffer("Heading", p.Heading)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	subarr, err := array.NewSubarray()
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}
	defer subarr.Free()

	rng := tiledb.MakeRange(uint64(0), nrows-uint64(1))
	subarr.AddRangeByName("__tiledb_rows", rng)
	err = query.SetSubarray(subarr)
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	err = query.Submit()
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	err = query.Finalize()
	if err != nil {
		return errors.Join(ErrWritePositionTdb, err)
	}

	md := map[string]string{"__tiledb_rows": "uint64"}
	jsn, err := JsonDumps(md)
	if err != nil {
		return err
	}
	err = array.PutMetadata("__pandas_index_dims", jsn)

	return err
}
