package emx

import (
	"errors"
)

// Error kinds surfaced by the decoder. Callers test with errors.Is; the
// decoder joins these with context describing the offending record.
var ErrRead = errors.New("Error Reading From Byte Source")
var ErrSeek = errors.New("Error Seeking Byte Source")
var ErrNoMemory = errors.New("Error Growing Record Buffer")
var ErrBadData = errors.New("Error Bad Datagram Data")
var ErrUnsupported = errors.New("Error Unsupported Datagram Content")

// Errors specific to the TileDB export path.
var ErrCreateAttitudeTdb = errors.New("Error Creating Attitude TileDB Array")
var ErrWriteAttitudeTdb = errors.New("Error Writing Attitude TileDB Array")
var ErrCreatePositionTdb = errors.New("Error Creating Position TileDB Array")
var ErrWritePositionTdb = errors.New("Error Writing Position TileDB Array")
var ErrCreateAttrTdb = errors.New("Error Creating Attribute for TileDB Array")
var ErrAddFilters = errors.New("Error Adding Filter To FilterList")
