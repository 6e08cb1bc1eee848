package classify

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/filepurge/filepurge/internal/model"
)

// rule is one voter in the ensemble. A positive weight votes DELETE, a
// negative weight votes KEEP; rules that don't fire abstain.
type rule struct {
	name   string
	weight int
	fires  func(Features) bool
}

// deleteThreshold is the net vote at which a file tips to DELETE.
const deleteThreshold = 3

// rules is the voting ensemble. Weights encode how strongly each signal
// argues for deletion (positive) or retention (negative).
var rules = []rule{
	{"accessed within 60d", -2, func(f Features) bool { return f.AccessedDays < 60 }},
	{"accessed within 180d", -1, func(f Features) bool { return f.AccessedDays < 180 }},

	{"disposable extension", 2, func(f Features) bool { return f.DisposableExt }},
	{"unaccessed 270d", 3, func(f Features) bool { return f.AccessedDays > 270 }},
	{"unaccessed 540d", 2, func(f Features) bool { return f.AccessedDays > 540 }},
	{"large and 180d stale", 2, func(f Features) bool { return f.SizeMB > 150 && f.AccessedDays > 180 }},
	{"medium and 365d stale", 1, func(f Features) bool { return f.SizeMB > 50 && f.AccessedDays > 365 }},
	{"unmodified 540d", 1, func(f Features) bool { return f.ModifiedDays > 540 }},
	{"hidden and 270d stale", 1, func(f Features) bool { return f.Hidden && f.AccessedDays > 270 }},
}

// Prediction is the raw classifier output before feedback re-weighting.
type Prediction struct {
	Action     model.Action
	KeepScore  float64 // probability-like score in [0,1], 1 = keep
	Confidence float64
	NetVote    int
	Fired      []string
}

// Classifier runs the rule ensemble.
type Classifier struct{}

// New returns a ready classifier.
func New() *Classifier {
	return &Classifier{}
}

// Predict classifies a single record. Files inside system-protected folders
// are always kept.
func (c *Classifier) Predict(rec model.FileRecord) Prediction {
	if rec.SystemFolder {
		return Prediction{
			Action:     model.ActionKeep,
			KeepScore:  1,
			Confidence: 1,
			Fired:      []string{"system folder"},
		}
	}

	f := FromRecord(rec)
	net := 0
	var fired []string
	for _, r := range rules {
		if r.fires(f) {
			net += r.weight
			fired = append(fired, r.name)
		}
	}

	// Logistic squash centered just under the delete threshold, so net=2
	// still leans keep and net=3 leans delete.
	keep := 1 / (1 + math.Exp(float64(net)-(deleteThreshold-0.5)))

	p := Prediction{
		KeepScore: keep,
		NetVote:   net,
		Fired:     fired,
	}
	if net >= deleteThreshold {
		p.Action = model.ActionDelete
		p.Confidence = 1 - keep
	} else {
		p.Action = model.ActionKeep
		p.Confidence = keep
	}
	return p
}

// PredictAll classifies a batch of records.
func (c *Classifier) PredictAll(records []model.FileRecord) []Prediction {
	preds := make([]Prediction, len(records))
	keeps := 0
	for i, rec := range records {
		preds[i] = c.Predict(rec)
		if preds[i].Action == model.ActionKeep {
			keeps++
		}
	}
	if len(records) > 0 {
		log.WithFields(log.Fields{
			"files":  len(records),
			"keep":   keeps,
			"delete": len(records) - keeps,
		}).Debug("classification complete")
	}
	return preds
}
