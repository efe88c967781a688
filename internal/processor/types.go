package processor

import (
	"runtime"

	"webpify/pkg/imgutil"
)

type Options struct {
	OutputExt  string
	Optimize   bool
	AutoOrient bool
	Workers    int
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Job is one source file and the quality it is encoded at. Each Job is run
// exactly once.
type Job struct {
	Path    string
	Display string
	Quality int
}

type Result struct {
	Path        string
	Display     string
	Output      string
	Kind        imgutil.Kind
	SourceBytes int64
	OutputBytes int64
	Err         error
}

// BytesSaved is negative when the output is larger than the source.
func (r Result) BytesSaved() int64 {
	if r.Err != nil {
		return 0
	}
	return r.SourceBytes - r.OutputBytes
}

type Summary struct {
	Total      int
	Converted  int
	Failed     int
	Skipped    int
	BytesSaved int64
}

// ProgressUpdate is emitted once per finished job.
type ProgressUpdate struct {
	Path            string
	ConvertedDelta  int
	FailedDelta     int
	BytesSavedDelta int64
}
