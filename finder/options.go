package finder

import "github.com/gruntwork-io/filefinder/pkg/log"

// WithLogger sets the logger queries report scan progress to.
func (f *Finder) WithLogger(logger log.Logger) *Finder {
	f.logger = logger
	return f
}

// WithNumWorkers sets the number of scan combinations that run concurrently.
func (f *Finder) WithNumWorkers(numWorkers int) *Finder {
	if numWorkers > 0 && numWorkers <= maxNumWorkers {
		f.numWorkers = numWorkers
	}

	return f
}

// WithMaxEnumeratedScans sets how many filter-value combinations are expanded
// into separate narrowed scans before a query falls back to a single wildcard
// scan plus extraction-time filtering.
func (f *Finder) WithMaxEnumeratedScans(maxScans int) *Finder {
	if maxScans > 0 {
		f.maxScans = maxScans
	}

	return f
}
