package emx

import (
	"errors"
	"math"
	"reflect"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

// ArrayOpen is a helper func for opening a tiledb array.
func ArrayOpen(ctx *tiledb.Context, uri string, mode tiledb.QueryType) (*tiledb.Array, error) {
	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return nil, err
	}

	err = array.Open(mode)
	if err != nil {
		array.Free()
		return nil, err
	}

	return array, nil
}

// ArrayOpenWrite opens a tiledb array in write mode.
func ArrayOpenWrite(ctx *tiledb.Context, uri string) (*tiledb.Array, error) {
	return ArrayOpen(ctx, uri, tiledb.TILEDB_WRITE)
}

// AddFilters sequentially appends compression filters to the filter pipeline list.
func AddFilters(filter_list *tiledb.FilterList, filter ...*tiledb.Filter) error {
	for _, filt := range filter {
		err := filter_list.AddFilter(filt)
		if err != nil {
			return errors.Join(ErrAddFilters, err)
		}
	}

	return nil
}

// AttachFilters acts as a helper for when setting the same pipeline filter
// list to a bunch of attributes.
func AttachFilters(filter_list *tiledb.FilterList, attrs ...*tiledb.Attribute) error {
	for _, attr := range attrs {
		err := attr.SetFilterList(filter_list)
		if err != nil {
			return err
		}
	}

	return nil
}

// ZstdFilter initialises the Zstandard compression filter and sets the
// compression level.
func ZstdFilter(ctx *tiledb.Context, level int32) (*tiledb.Filter, error) {
	filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_ZSTD)
	if err != nil {
		return nil, err
	}

	err = filt.SetOption(tiledb.TILEDB_COMPRESSION_LEVEL, level)
	if err != nil {
		filt.Free()
		return nil, err
	}

	return filt, nil
}

// CreateAttr creates a tiledb attribute along with the compression filter
// pipeline. The configuration is specified by the tags attached to the
// struct type.
// Tags for tiledb include: dtype and ftype, where dtype is datatype and
// ftype is fieldtype (dim or attr) for dimension or attribute.
// Tags for filters include: zstd(level=16), bysh, bish.
// Filters will be set in the order they're specified in the tag.
// An example tag is `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
func CreateAttr(
	field_name string,
	filter_defs []stgpsr.Definition,
	tiledb_defs map[string]stgpsr.Definition,
	schema *tiledb.ArraySchema,
	ctx *tiledb.Context,
) error {

	var tdb_dtype tiledb.Datatype

	def, status := tiledb_defs["dtype"]
	if !status {
		return errors.Join(ErrCreateAttrTdb, errors.New("dtype tag not found"))
	}
	dtype, _ := def.Attribute("dtype")

	// define datatype
	switch dtype {
	case "uint8":
		tdb_dtype = tiledb.TILEDB_UINT8
	case "uint16":
		tdb_dtype = tiledb.TILEDB_UINT16
	case "float32":
		tdb_dtype = tiledb.TILEDB_FLOAT32
	case "float64":
		tdb_dtype = tiledb.TILEDB_FLOAT64
	case "datetime_ns": // can add other datetime types when required
		tdb_dtype = tiledb.TILEDB_DATETIME_NS
	default:
		return errors.Join(ErrCreateAttrTdb, errors.New("unhandled dtype tag"))
	}

	attr_filts, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return errors.Join(ErrCreateAttrTdb, err)
	}
	defer attr_filts.Free()

	// filter pipeline
	for _, filter := range filter_defs {
		switch filter.Name() {
		case "zstd":
			level, status := filter.Attribute("level")
			if !status {
				return errors.Join(ErrCreateAttrTdb, errors.New("zstd level not defined"))
			}
			filt, err := ZstdFilter(ctx, int32(level.(int64)))
			if err != nil {
				return errors.Join(ErrCreateAttrTdb, err)
			}
			defer filt.Free()
			err = attr_filts.AddFilter(filt)
			if err != nil {
				return errors.Join(ErrCreateAttrTdb, err)
			}
		case "bysh":
			filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_BYTESHUFFLE)
			if err != nil {
				return errors.Join(ErrCreateAttrTdb, err)
			}
			defer filt.Free()
			err = attr_filts.AddFilter(filt)
			if err != nil {
				return errors.Join(ErrCreateAttrTdb, err)
			}
		case "bish":
			filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_BITSHUFFLE)
			if err != nil {
				return errors.Join(ErrCreateAttrTdb, err)
			}
			defer filt.Free()
			err = attr_filts.AddFilter(filt)
			if err != nil {
				return errors.Join(ErrCreateAttrTdb, err)
			}
		}
	}

	// create attr
	attr, err := tiledb.NewAttribute(ctx, field_name, tdb_dtype)
	if err != nil {
		return errors.Join(ErrCreateAttrTdb, err)
	}
	defer attr.Free()

	// attach filter pipeline to attr
	err = AttachFilters(attr_filts, attr)
	if err != nil {
		return errors.Join(ErrCreateAttrTdb, err)
	}

	// attach attr to schema
	err = schema.AddAttributes(attr)
	if err != nil {
		return errors.Join(ErrCreateAttrTdb, err)
	}

	return nil
}

// schema_attrs establishes the tiledb attributes for a series struct whose
// exported slice fields carry tiledb and filters tags.
func schema_attrs(series interface{}, schema *tiledb.ArraySchema, ctx *tiledb.Context) error {
	var field_tdb_defs map[string]stgpsr.Definition

	values := reflect.ValueOf(series).Elem()
	types := values.Type()
	filt_defs, _ := stgpsr.ParseStruct(series, "filters")
	tdb_defs, _ := stgpsr.ParseStruct(series, "tiledb")

	// process every field in the struct
	for i := 0; i < values.NumField(); i++ {
		name := types.Field(i).Name

		field_filt_defs := filt_defs[name]

		// a mapping just seemed easier to pull required defs
		// rather than a simple listing
		field_tdb_defs = make(map[string]stgpsr.Definition)
		for _, v := range tdb_defs[name] {
			field_tdb_defs[v.Name()] = v
		}

		// pull the field type and ignore dimension fields
		def, status := field_tdb_defs["ftype"]
		if !status {
			return errors.Join(ErrCreateAttrTdb, errors.New("ftype tag not found"))
		}
		ftype, _ := def.Attribute("ftype")
		if ftype == "dim" {
			// ignore dimensions
			continue
		}

		err := CreateAttr(name, field_filt_defs, field_tdb_defs, schema, ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// dense_row_array establishes a dense tiledb array on disk/object store,
// dimensioned by row number, with attributes drawn from the series struct
// tags.
func dense_row_array(file_uri string, ctx *tiledb.Context, nrows uint64, series interface{}) error {
	// an arbitrary choice; maybe at a future date we evaluate a good number
	tile_sz := uint64(math.Min(float64(50000), float64(nrows)))

	// array domain
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return err
	}
	defer domain.Free()

	// setup dimension options
	// using a combination of delta filter (ascending rows) and zstandard
	dim, err := tiledb.NewDimension(ctx, "__tiledb_rows", tiledb.TILEDB_UINT64, []uint64{0, nrows - uint64(1)}, tile_sz)
	if err != nil {
		return err
	}
	defer dim.Free()

	dim_filters, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return err
	}
	defer dim_filters.Free()

	dim_f1, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_POSITIVE_DELTA)
	if err != nil {
		return err
	}
	defer dim_f1.Free()

	dim_f2, err := ZstdFilter(ctx, int32(16))
	if err != nil {
		return err
	}
	defer dim_f2.Free()

	// attach filters to the pipeline
	err = AddFilters(dim_filters, dim_f1, dim_f2)
	if err != nil {
		return err
	}
	err = dim.SetFilterList(dim_filters)
	if err != nil {
		return err
	}

	err = domain.AddDimensions(dim)
	if err != nil {
		return err
	}

	// setup schema
	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_DENSE)
	if err != nil {
		return err
	}
	defer schema.Free()

	err = schema.SetDomain(domain)
	if err != nil {
		return err
	}

	// cell and tile ordering was an arbitrary choice
	err = schema.SetCellOrder(tiledb.TILEDB_ROW_MAJOR)
	if err != nil {
		return err
	}

	err = schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR)
	if err != nil {
		return err
	}

	// add the struct fields as tiledb attributes
	err = schema_attrs(series, schema, ctx)
	if err != nil {
		return err
	}

	// finally, create the empty array on disk, object store, etc
	array, err := tiledb.NewArray(ctx, file_uri)
	if err != nil {
		return err
	}
	defer array.Free()

	err = array.Create(schema)
	if err != nil {
		return err
	}

	return nil
}
