package predict

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/boramlab/vlens/internal/model"
)

// Input is one video's worth of prediction input.
type Input struct {
	Meta    model.VideoMetadata
	Series  model.Series
	Channel *model.ChannelStats
}

// BatchPredict runs Predict over every input in parallel, preserving input
// order in the output. Per-video computations are independent and read-only,
// so the parallelism is pure throughput; results are identical to a serial
// loop. The context only bounds scheduling; a video's computation itself is
// not cancellable, which is fine because it is short and in-memory.
func (p *Predictor) BatchPredict(ctx context.Context, inputs []Input, horizonDays int) []model.PredictionModel {
	out := make([]model.PredictionModel, len(inputs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out[i] = p.Predict(in.Meta, in.Series, horizonDays, in.Channel)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return out
}

// FindViralCandidates filters predictions to viral probability above 0.5,
// sorted descending, capped at limit. A limit <= 0 means no cap.
func FindViralCandidates(preds []model.PredictionModel, limit int) []model.PredictionModel {
	var out []model.PredictionModel
	for _, pr := range preds {
		if pr.ViralProbability > 0.5 {
			out = append(out, pr)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ViralProbability > out[j].ViralProbability
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
