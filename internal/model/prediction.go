package model

import "time"

// Trajectory classifies a video's growth shape. Each trajectory drives its
// own projection formula in internal/analysis/predict.
type Trajectory string

const (
	TrajectoryExponential Trajectory = "exponential"
	TrajectoryLinear      Trajectory = "linear"
	TrajectoryLogarithmic Trajectory = "logarithmic"
	TrajectoryPlateau     Trajectory = "plateau"
	TrajectoryDeclining   Trajectory = "declining"
)

// PredictionModel is the growth predictor's output for one video. Produced
// fresh per call; persistence and comparison-to-actuals are the caller's
// concern.
type PredictionModel struct {
	VideoID            string     `json:"video_id"`
	PredictedViews     float64    `json:"predicted_views"` // >= 0
	PredictedLikes     float64    `json:"predicted_likes"` // >= 0
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
	ViralProbability   float64    `json:"viral_probability"` // [0, 1]
	GrowthTrajectory   Trajectory `json:"growth_trajectory"`
	HorizonDays        int        `json:"horizon_days"`
	PredictionDate     time.Time  `json:"prediction_date"`
	ModelVersion       string     `json:"model_version"`
}
