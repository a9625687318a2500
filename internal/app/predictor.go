package service

import (
	"context"
	"errors"

	"github.com/okian/titanic/internal/domain/passenger"
	"github.com/okian/titanic/internal/domain/scoring"
	"github.com/okian/titanic/pkg/logger"
	"github.com/okian/titanic/pkg/metrics"
)

// NameNotProvided is echoed when a prediction request carries no name.
const NameNotProvided = "No proporcionado"

// Prediction is the response to a scoring request.
type Prediction struct {
	Survived    bool             `json:"survived"`
	Probability float64          `json:"probability"`
	Score       int              `json:"score"`
	Features    scoring.Features `json:"features"`
	Message     string           `json:"message"`
	Passenger   PassengerEcho    `json:"passenger"`
}

// PassengerEcho repeats the interesting request attributes.
type PassengerEcho struct {
	Name       string  `json:"name"`
	Pclass     int     `json:"pclass"`
	Sex        string  `json:"sex"`
	Age        float64 `json:"age"`
	FamilySize float64 `json:"family_size"`
}

// SampleStats describes the fixed sample. Accuracy is a placeholder and
// AccuracyMeasured is always false.
type SampleStats struct {
	passenger.Summary
	Accuracy         string `json:"accuracy"`
	AccuracyMeasured bool   `json:"accuracy_measured"`
	Note             string `json:"note"`
}

// ModelInfo describes the scorer.
type ModelInfo struct {
	ModelType     string         `json:"model_type"`
	Rules         []scoring.Rule `json:"rules"`
	LogisticScale float64        `json:"logistic_scale"`
	Threshold     float64        `json:"threshold"`
	Accuracy      string         `json:"accuracy"`
}

// PredictorService scores hypothetical passengers and reports the static sample stats.
type PredictorService struct {
	scorer   scoring.Scorer
	sample   []passenger.Passenger
	accuracy string
	logger   logger.Logger
}

// NewPredictorService constructs a PredictorService.
func NewPredictorService(opts ...Option) *PredictorService {
	cfg := newSettings(opts)
	l := cfg.logger
	if l == nil {
		l = logger.NewNop()
	}
	return &PredictorService{
		scorer:   cfg.scorer,
		sample:   append([]passenger.Passenger(nil), cfg.sample...),
		accuracy: cfg.accuracy,
		logger:   l,
	}
}

// PredictJSON decodes a request body and scores it. Decoding failures wrap
// the scoring input errors.
func (s *PredictorService) PredictJSON(ctx context.Context, body []byte) (Prediction, error) {
	in, err := scoring.DecodeInput(body)
	if err != nil {
		field := "body"
		var fe *scoring.FieldError
		if errors.As(err, &fe) {
			field = fe.Field
		}
		metrics.RecordValidationFailure(field)
		s.logger.Debug(ctx, "prediction rejected", logger.String("field", field), logger.Error(err))
		return Prediction{}, err
	}
	return s.Predict(ctx, in)
}

// Predict scores in.
func (s *PredictorService) Predict(ctx context.Context, in scoring.Input) (Prediction, error) {
	res, err := s.scorer.Score(ctx, in)
	if err != nil {
		return Prediction{}, err
	}
	metrics.RecordPrediction(res.Survived, res.Score)

	name := in.Name
	if name == "" {
		name = NameNotProvided
	}
	return Prediction{
		Survived:    res.Survived,
		Probability: res.Probability,
		Score:       res.Score,
		Features:    res.Features,
		Message:     scoring.Message(res),
		Passenger: PassengerEcho{
			Name:       name,
			Pclass:     in.Pclass,
			Sex:        in.Sex,
			Age:        in.Age,
			FamilySize: in.FamilySize() + 1,
		},
	}, nil
}

// Stats summarizes the fixed sample.
func (s *PredictorService) Stats(_ context.Context) SampleStats {
	return SampleStats{
		Summary:          passenger.Summarize(s.sample),
		Accuracy:         s.accuracy,
		AccuracyMeasured: false,
		Note:             "Precisión de referencia, no medida sobre el modelo heurístico",
	}
}

// ModelInfo describes the rule set.
func (s *PredictorService) ModelInfo(_ context.Context) ModelInfo {
	return ModelInfo{
		ModelType:     "heuristic",
		Rules:         scoring.Rules(),
		LogisticScale: scoring.LogisticScale,
		Threshold:     scoring.Threshold,
		Accuracy:      s.accuracy,
	}
}
