package synthetic_test

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/service/synthetic"
)

func TestGenerator_Catalog(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	gen := synthetic.New(synthetic.WithClock(func() time.Time { return base }))

	events := gen.Generate()
	gt.Array(t, events).Length(synthetic.Len())

	categories := map[types.Category]int{}
	retrospective := 0
	ids := map[string]struct{}{}

	for _, ev := range events {
		categories[ev.Category]++
		if strings.HasPrefix(ev.Headline, "RETROSPECTIVE:") {
			retrospective++
		}
		ids[ev.ID] = struct{}{}

		gt.Value(t, ev.Source).Equal(synthetic.Source)
		gt.Bool(t, ev.Category.IsValid()).True()
		gt.Value(t, ev.GeminiAnalysis).Nil()
		gt.String(t, ev.Commodity).NotEqual("")
		gt.Bool(t, ev.RiskScore >= 0 && ev.RiskScore <= 10).True()

		ts, err := time.Parse(model.TimestampLayout, ev.Timestamp)
		gt.NoError(t, err).Required()
		age := base.Sub(ts)
		gt.Bool(t, age >= time.Hour && age <= 24*time.Hour).True()
	}

	gt.Value(t, len(categories)).Equal(len(types.AllCategories()))
	gt.Value(t, retrospective).Equal(2)
	gt.Value(t, len(ids)).Equal(len(events))
}

func TestGenerator_RegeneratesTimestampsNotContent(t *testing.T) {
	gen := synthetic.New(synthetic.WithRand(rand.New(rand.NewPCG(1, 2))))

	first := gen.Generate()
	second := gen.Generate()
	gt.Array(t, second).Length(len(first))

	sameTimestamps := true
	for i := range first {
		gt.Value(t, second[i].Headline).Equal(first[i].Headline)
		gt.Value(t, second[i].ID).Equal(first[i].ID)
		gt.Value(t, second[i].RiskScore).Equal(first[i].RiskScore)
		if first[i].Timestamp != second[i].Timestamp {
			sameTimestamps = false
		}
	}
	gt.Bool(t, sameTimestamps).False()
}

func TestGenerator_ReturnsIndependentCopies(t *testing.T) {
	gen := synthetic.New()

	first := gen.Generate()
	first[0].Headline = "mutated"
	first[0].RiskScore = 10

	second := gen.Generate()
	gt.String(t, second[0].Headline).NotEqual("mutated")
}
