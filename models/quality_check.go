package models

import (
	"time"

	"gorm.io/gorm"
)

// QCPassThreshold is the fixed cupping pass mark out of 100.
const QCPassThreshold = 80.0

// QualityCheck is one cupping/inspection session. Ten 0-10 sub-scores sum to
// TotalScore; the batch is gated on TotalScore >= QCPassThreshold.
type QualityCheck struct {
	gorm.Model
	BatchID     uint      `json:"batch_id" gorm:"index"`
	Batch       Batch     `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	Checkpoint  string    `json:"checkpoint" gorm:"size:40;index"`
	Fragrance   float64   `json:"fragrance"`
	Flavor      float64   `json:"flavor"`
	Aftertaste  float64   `json:"aftertaste"`
	Acidity     float64   `json:"acidity"`
	Body        float64   `json:"body"`
	Balance     float64   `json:"balance"`
	Sweetness   float64   `json:"sweetness"`
	Uniformity  float64   `json:"uniformity"`
	CleanCup    float64   `json:"clean_cup"`
	Overall     float64   `json:"overall"`
	TotalScore  float64   `json:"total_score"`
	MoisturePct *float64  `json:"moisture_pct"`
	Defects     *float64  `json:"defects"`
	InspectorID uint      `json:"inspector_id"`
	SessionNote string    `json:"session_note" gorm:"size:500"`
	SessionDate time.Time `json:"session_date"`
}

// SubScores lists the ten cupping attributes in rubric order.
func (q *QualityCheck) SubScores() []float64 {
	return []float64{
		q.Fragrance, q.Flavor, q.Aftertaste, q.Acidity, q.Body,
		q.Balance, q.Sweetness, q.Uniformity, q.CleanCup, q.Overall,
	}
}

func (q *QualityCheck) Passed() bool {
	return q.TotalScore >= QCPassThreshold
}
