package model_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

func TestNewEvent_Defaults(t *testing.T) {
	t.Parallel()

	ev := model.NewEvent(model.RawEvent{})

	gt.Value(t, ev.Headline).Equal(model.DefaultHeadline)
	gt.Value(t, ev.Location).Equal(model.DefaultLocation)
	gt.Value(t, ev.Commodity).Equal(model.DefaultCommodity)
	gt.Value(t, ev.SourceURL).Equal(model.DefaultSourceURL)
	gt.Value(t, ev.Source).Equal(model.DefaultSource)
	gt.Value(t, ev.Category).Equal(types.CategoryGeneral)
	gt.Value(t, ev.GeminiAnalysis).Nil()
	gt.String(t, ev.ID).NotEqual("")

	_, err := time.Parse(model.TimestampLayout, ev.Timestamp)
	gt.NoError(t, err)
}

func TestNewEvent_Normalization(t *testing.T) {
	t.Parallel()

	raw := model.RawEvent{
		Headline:  "  Steel mill strike halts output  ",
		Snippet:   strings.Repeat("é", 300),
		Source:    "Reuters",
		SourceURL: "https://example.com/a",
		Timestamp: "2026-03-01 08:30",
		RiskScore: 42,
	}
	ev := model.NewEvent(raw)

	gt.Value(t, ev.Headline).Equal("Steel mill strike halts output")
	gt.Value(t, ev.Category).Equal(types.CategoryConstruction)
	gt.Value(t, ev.RiskScore).Equal(model.MaxRiskScore)
	gt.Value(t, utf8.RuneCountInString(ev.ArticleSnippet)).Equal(model.MaxSnippetLength)
	gt.Bool(t, utf8.ValidString(ev.ArticleSnippet)).True()
	gt.Value(t, ev.Timestamp).Equal("2026-03-01 08:30")
	gt.Value(t, ev.Source).Equal("Reuters")
}

func TestNewEvent_SnippetFallsBackToHeadline(t *testing.T) {
	t.Parallel()

	ev := model.NewEvent(model.RawEvent{Headline: "Cargo backlog grows"})
	gt.Value(t, ev.ArticleSnippet).Equal("Cargo backlog grows")
}

func TestNewEvent_Invariants(t *testing.T) {
	t.Parallel()

	raws := []model.RawEvent{
		{},
		{Headline: strings.Repeat("x", 900), RiskScore: -3},
		{Headline: "Port congestion", RiskScore: 4},
		{Headline: "Sanctions widen", RiskScore: 11},
	}

	for _, raw := range raws {
		for range 20 {
			ev := model.NewEvent(raw)
			gt.Number(t, ev.RiskScore).GreaterOrEqual(0)
			gt.Number(t, ev.RiskScore).LessOrEqual(10)
			gt.Number(t, ev.Latitude).GreaterOrEqual(-90)
			gt.Number(t, ev.Latitude).LessOrEqual(90)
			gt.Number(t, ev.Longitude).GreaterOrEqual(-180)
			gt.Number(t, ev.Longitude).LessOrEqual(180)
			gt.Bool(t, ev.Category.IsValid()).True()
			gt.Number(t, utf8.RuneCountInString(ev.Headline)).LessOrEqual(model.MaxHeadlineLength)
			gt.Number(t, utf8.RuneCountInString(ev.ArticleSnippet)).LessOrEqual(model.MaxSnippetLength)
		}
	}
}

func TestNewEventID_Stable(t *testing.T) {
	t.Parallel()

	a := model.NewEventID("https://example.com/x", "Headline")
	b := model.NewEventID("https://example.com/x", "Headline")
	c := model.NewEventID("https://example.com/y", "Headline")

	gt.Value(t, a).Equal(b)
	gt.Value(t, a).NotEqual(c)
}

func TestEvent_Clone(t *testing.T) {
	t.Parallel()

	pred := "Rebar prices rise"
	ev := model.NewEvent(model.RawEvent{Headline: "Steel shortage"})
	ev.GeminiAnalysis = model.NewAnalysisSuccess(&model.Analysis{
		RiskScore:              8,
		AffectedIndustries:     []string{"construction"},
		ConstructionPrediction: &pred,
	})

	cp := ev.Clone()
	cp.Headline = "changed"
	cp.GeminiAnalysis.Analysis().AffectedIndustries[0] = "changed"
	*cp.GeminiAnalysis.Analysis().ConstructionPrediction = "changed"

	gt.Value(t, ev.Headline).Equal("Steel shortage")
	gt.Value(t, ev.GeminiAnalysis.Analysis().AffectedIndustries[0]).Equal("construction")
	gt.Value(t, *ev.GeminiAnalysis.Analysis().ConstructionPrediction).Equal(pred)

	var nilEvent *model.Event
	gt.Value(t, nilEvent.Clone()).Nil()
	gt.Value(t, model.CloneEvents(nil)).Nil()
}

func TestEvent_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("out of range values are repaired", func(t *testing.T) {
		ev := &model.Event{
			Headline:  "  Port strike  ",
			RiskScore: 42,
			Category:  types.Category("Bogus"),
		}
		ev.Normalize()

		gt.Value(t, ev.Headline).Equal("Port strike")
		gt.Value(t, ev.RiskScore).Equal(model.MaxRiskScore)
		gt.Value(t, ev.Category).Equal(types.CategoryDisruption)
		gt.Value(t, ev.Location).Equal(model.DefaultLocation)
		gt.Value(t, ev.Commodity).Equal(model.DefaultCommodity)
		gt.Value(t, ev.Source).Equal(model.DefaultSource)
		gt.Value(t, ev.SourceURL).Equal(model.DefaultSourceURL)
		gt.Value(t, ev.ID).Equal(model.NewEventID(model.DefaultSourceURL, "Port strike"))
		gt.String(t, ev.Timestamp).NotEqual("")
	})

	t.Run("negative risk and long text", func(t *testing.T) {
		ev := &model.Event{
			Headline:       strings.Repeat("é", model.MaxHeadlineLength+10),
			ArticleSnippet: strings.Repeat("a", model.MaxSnippetLength+10),
			RiskScore:      -4,
		}
		ev.Normalize()

		gt.Value(t, utf8.RuneCountInString(ev.Headline)).Equal(model.MaxHeadlineLength)
		gt.Value(t, len(ev.ArticleSnippet)).Equal(model.MaxSnippetLength)
		gt.Value(t, ev.RiskScore).Equal(model.MinRiskScore)
		gt.Value(t, ev.Category).Equal(types.CategoryGeneral)
	})

	t.Run("valid values are kept", func(t *testing.T) {
		ev := &model.Event{
			ID:        "fixed",
			Timestamp: "2026-01-15 10:30",
			Headline:  "Steel mill expansion",
			Location:  "Pittsburgh, USA",
			RiskScore: 6,
			Category:  types.CategoryShortage,
			Commodity: "Steel",
			Source:    "Wire",
			SourceURL: "https://example.com/steel",
		}
		before := *ev
		ev.Normalize()
		gt.Value(t, *ev).Equal(before)
	})

	t.Run("empty headline gets the default", func(t *testing.T) {
		ev := &model.Event{}
		ev.Normalize()
		gt.Value(t, ev.Headline).Equal(model.DefaultHeadline)
	})
}
