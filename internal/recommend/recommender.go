package recommend

import (
	log "github.com/sirupsen/logrus"

	"github.com/filepurge/filepurge/internal/classify"
	"github.com/filepurge/filepurge/internal/model"
)

// Recommender re-weights classifier scores with learned preferences and
// folds in anomaly detection.
type Recommender struct {
	classifier *classify.Classifier
	feedback   *Feedback
}

// New builds a recommender around the given feedback store.
func New(feedback *Feedback) *Recommender {
	return &Recommender{
		classifier: classify.New(),
		feedback:   feedback,
	}
}

// AdjustScore nudges a keep-score toward the user's past behavior for this
// extension and category. Adjustment only applies once enough history
// exists; extension preference weighs twice as much as category preference.
func (r *Recommender) AdjustScore(rec model.FileRecord, base float64) float64 {
	if r.feedback == nil || r.feedback.Len() < minSimilarCount {
		return base
	}

	extPref := r.feedback.ExtensionPreference(rec.Extension)
	catPref := r.feedback.CategoryPreference(rec.Category)

	adjusted := base +
		(extPref-neutralScore)*extAdjustFactor +
		(catPref-neutralScore)*catAdjustFactor

	if adjusted < 0 {
		adjusted = 0
	}
	if adjusted > 1 {
		adjusted = 1
	}
	return adjusted
}

// Recommend produces the final verdict for one record.
func (r *Recommender) Recommend(rec model.FileRecord) model.Recommendation {
	pred := r.classifier.Predict(rec)
	anomaly := classify.DetectAnomaly(rec)

	adjusted := pred.KeepScore
	// System-folder keeps are not negotiable, even by feedback.
	if !rec.SystemFolder {
		adjusted = r.AdjustScore(rec, pred.KeepScore)
	}

	out := model.Recommendation{
		KeepScore:      pred.KeepScore,
		AdjustedScore:  adjusted,
		UserInfluenced: abs(adjusted-pred.KeepScore) > influenceMinimum,
		Anomaly:        anomaly.Anomaly,
		AnomalyScore:   anomaly.Score,
		AnomalyReason:  anomaly.Reasons,
	}

	if adjusted < 0.5 {
		out.Action = model.ActionDelete
		out.Confidence = 1 - adjusted
	} else {
		out.Action = model.ActionKeep
		out.Confidence = adjusted
	}
	return out
}

// RecommendAll annotates a batch of records.
func (r *Recommender) RecommendAll(records []model.FileRecord) []model.Recommendation {
	recs := make([]model.Recommendation, len(records))
	deletes, anomalies := 0, 0
	for i, rec := range records {
		recs[i] = r.Recommend(rec)
		if recs[i].Action == model.ActionDelete {
			deletes++
		}
		if recs[i].Anomaly {
			anomalies++
		}
	}
	if len(records) > 0 {
		log.WithFields(log.Fields{
			"files":     len(records),
			"delete":    deletes,
			"anomalies": anomalies,
		}).Info("recommendations ready")
	}
	return recs
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
