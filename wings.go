/*
Package wings is a library for extracting the fonts, ship sprites and level
artwork from the data files of the DOS game Wings.

The individual file formats are handled by the font, ship, level, bitmap,
palette and rle packages and turned into images by the raster package. This
package ties them together: it converts single files, or walks a whole data
directory converting everything it recognises, and can record what it
extracted in an index database.
*/
package wings

import (
	"io"
	"log"
	"runtime"
)

// Options controls how assets are written.
type Options struct {
	// Format is the image format for every extracted image
	Format Format
	// Scale enlarges every image by this integer factor
	Scale int
	// Palette is the PCX image providing the palette for ships. If empty,
	// Convert looks for one in the data directory
	Palette string
	// Workers is the number of files converted concurrently by Convert
	Workers int
	// KeepGoing logs and skips files that fail to convert instead of
	// stopping
	KeepGoing bool
}

// Wings converts Wings data files.
type Wings struct {
	db     *IndexDB
	logger *log.Logger
	opts   Options
}

// New returns a converter. db may be nil in which case nothing is recorded,
// and a nil logger discards all output.
func New(db *IndexDB, logger *log.Logger, opts Options) *Wings {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	return &Wings{
		db:     db,
		logger: logger,
		opts:   opts,
	}
}
