// Package classify turns file metadata into keep/delete recommendations and
// anomaly flags. Everything here operates on metadata only.
package classify

import (
	"math"

	"github.com/filepurge/filepurge/internal/model"
)

// sizeBins are the size-category boundaries in MB.
var sizeBins = []float64{0, 0.1, 1, 10, 100, math.Inf(1)}

const staleThresholdDays = 365

// Features is the engineered vector the classifier and anomaly detector
// consume. It is derived deterministically from a FileRecord.
type Features struct {
	SizeMB  float64
	LogSize float64
	SizeBin int

	CreatedDays  float64
	ModifiedDays float64
	AccessedDays float64
	DormantDays  float64

	AccessModifyRatio float64
	Stale             bool

	Hidden        bool
	DisposableExt bool
	SystemFolder  bool
	Recent        bool
	Old           bool
	Large         bool

	Depth     int
	DepthNorm float64

	LargeAndOld    bool
	SmallAndRecent bool
}

// FromRecord engineers features from raw metadata.
func FromRecord(r model.FileRecord) Features {
	f := Features{
		SizeMB:  r.SizeMB,
		LogSize: math.Log1p(r.SizeMB),

		CreatedDays:  r.CreatedDays,
		ModifiedDays: r.ModifiedDays,
		AccessedDays: r.AccessedDays,
		DormantDays:  r.DormantDays,

		AccessModifyRatio: r.AccessModifyRatio,
		Stale:             r.AccessedDays > staleThresholdDays,

		Hidden:        r.Hidden,
		DisposableExt: r.DisposableExt,
		SystemFolder:  r.SystemFolder,
		Recent:        r.Recent,
		Old:           r.Old,
		Large:         r.Large,

		Depth:     r.Depth,
		DepthNorm: math.Min(float64(r.Depth)/10, 1.0),
	}

	for i := 1; i < len(sizeBins); i++ {
		if r.SizeMB <= sizeBins[i] {
			f.SizeBin = i - 1
			break
		}
	}

	f.LargeAndOld = f.Large && f.Old
	f.SmallAndRecent = r.SizeMB < 1 && f.Recent
	return f
}
