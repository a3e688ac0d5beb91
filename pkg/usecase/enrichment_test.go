package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/usecase"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateFn func(ctx context.Context, input []gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, input)
	}
	return &gollem.Response{Texts: []string{"ok"}}, nil
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return s.Generate(ctx, input)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return s.Stream(ctx, input)
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// replyingClient answers every prompt with text and records the prompts
func replyingClient(text string, prompts *[]string) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateFn: func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
					if prompts != nil {
						for _, in := range input {
							if txt, ok := in.(gollem.Text); ok {
								*prompts = append(*prompts, string(txt))
							}
						}
					}
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}

func failingClient(err error) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateFn: func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
					return nil, err
				},
			}, nil
		},
	}
}

func sampleEvent() *model.Event {
	ev := model.NewEvent(model.RawEvent{
		Headline:  "Port strike threatens West Coast logistics",
		Snippet:   "Union vote authorizes strike at LA/Long Beach.",
		SourceURL: "https://example.com/la-strike",
		RiskScore: 4,
	})
	ev.Location = "Los Angeles, USA"
	return ev
}

func TestAnalyzeEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("nil client returns the event unchanged", func(t *testing.T) {
		uc := usecase.NewEnrichmentUseCase(nil)
		ev := sampleEvent()
		gt.Value(t, uc.AnalyzeEvent(ctx, ev)).Equal(ev)
		gt.Bool(t, uc.Enabled()).False()
	})

	t.Run("success merges risk category and reasoning", func(t *testing.T) {
		var prompts []string
		uc := usecase.NewEnrichmentUseCase(replyingClient("```json\n"+`{
			"risk_score": 14,
			"category": "Disruption",
			"affected_industries": ["retail", "automotive"],
			"geographic_ripple": ["USA", "China"],
			"timeline": {"short_term": "delays", "medium_term": "rerouting", "long_term": "normal"},
			"reasoning": "Labor action stalls container flows.",
			"actionable_intelligence": "Watch union talks.",
			"is_construction_related": false,
			"construction_prediction": null
		}`+"\n```", &prompts))

		ev := sampleEvent()
		out := uc.AnalyzeEvent(ctx, ev)

		gt.Value(t, out.RiskScore).Equal(10)
		gt.Value(t, out.Category).Equal(types.CategoryDisruption)
		gt.Value(t, out.Reasoning).Equal("Labor action stalls container flows.")
		gt.Bool(t, out.GeminiAnalysis.Failed()).False()
		gt.Array(t, out.GeminiAnalysis.Analysis().AffectedIndustries).Length(2)

		// input is not modified
		gt.Value(t, ev.RiskScore).Equal(4)
		gt.Value(t, ev.GeminiAnalysis).Nil()

		gt.Array(t, prompts).Length(1)
		gt.String(t, prompts[0]).Contains("Headline: Port strike threatens West Coast logistics")
		gt.String(t, prompts[0]).Contains("Location: Los Angeles, USA")
		gt.String(t, prompts[0]).Contains(`"Geopolitical"`)
	})

	t.Run("unknown category keeps the heuristic one", func(t *testing.T) {
		uc := usecase.NewEnrichmentUseCase(replyingClient(`{"risk_score": 0, "category": "Weather", "reasoning": "r"}`, nil))
		ev := sampleEvent()
		out := uc.AnalyzeEvent(ctx, ev)

		gt.Value(t, out.Category).Equal(ev.Category)
		gt.Value(t, out.RiskScore).Equal(1)
	})

	t.Run("prose response attaches error marker", func(t *testing.T) {
		uc := usecase.NewEnrichmentUseCase(replyingClient("Sorry, I cannot help with that.", nil))
		ev := sampleEvent()
		out := uc.AnalyzeEvent(ctx, ev)

		gt.Bool(t, out.GeminiAnalysis.Failed()).True()
		gt.Value(t, out.GeminiAnalysis.Analysis()).Nil()
		gt.Value(t, out.RiskScore).Equal(ev.RiskScore)
		gt.Value(t, out.Category).Equal(ev.Category)
	})

	t.Run("transport error attaches error marker", func(t *testing.T) {
		uc := usecase.NewEnrichmentUseCase(failingClient(errors.New("quota exceeded")))
		out := uc.AnalyzeEvent(ctx, sampleEvent())

		gt.Bool(t, out.GeminiAnalysis.Failed()).True()
		gt.String(t, out.GeminiAnalysis.ErrorMessage()).Contains("quota exceeded")
	})

	t.Run("session error attaches error marker", func(t *testing.T) {
		uc := usecase.NewEnrichmentUseCase(&mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, errors.New("no credentials")
			},
		})
		out := uc.AnalyzeEvent(ctx, sampleEvent())
		gt.String(t, out.GeminiAnalysis.ErrorMessage()).Contains("no credentials")
	})
}

func TestAnalyzeEventRequestsStructuredOutput(t *testing.T) {
	var cfg gollem.SessionConfig
	client := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			cfg = gollem.NewSessionConfig(options...)
			return &mockLLMSession{
				generateFn: func(ctx context.Context, input []gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{`{"risk_score":6,"category":"Disruption","reasoning":"r","timeline":{"short_term":"a","medium_term":"b","long_term":"c"}}`}}, nil
				},
			}, nil
		},
	}

	out := usecase.NewEnrichmentUseCase(client).AnalyzeEvent(context.Background(), sampleEvent())
	gt.Value(t, out.RiskScore).Equal(6)
	gt.Value(t, cfg.ContentType()).Equal(gollem.ContentTypeJSON)

	schema := cfg.ResponseSchema()
	gt.Value(t, schema).NotNil().Required()
	for _, name := range []string{"risk_score", "category", "reasoning", "timeline"} {
		gt.Value(t, schema.Properties[name]).NotNil().Required()
		gt.True(t, schema.Properties[name].Required)
	}
	for _, name := range []string{"short_term", "medium_term", "long_term"} {
		gt.True(t, schema.Properties["timeline"].Properties[name].Required)
	}
	gt.False(t, schema.Properties["construction_prediction"].Required)
	gt.Value(t, *schema.Properties["risk_score"].Minimum).Equal(float64(model.MinAIRiskScore))
	gt.Value(t, *schema.Properties["risk_score"].Maximum).Equal(float64(model.MaxAIRiskScore))
}

func TestExecutiveBrief(t *testing.T) {
	ctx := context.Background()
	events := []*model.Event{sampleEvent()}

	t.Run("nil client", func(t *testing.T) {
		b := usecase.NewEnrichmentUseCase(nil).ExecutiveBrief(ctx, events)
		gt.Value(t, b.Error).Equal(usecase.BriefNoClientError)
	})

	t.Run("no events does not call the service", func(t *testing.T) {
		called := false
		uc := usecase.NewEnrichmentUseCase(&mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				called = true
				return &mockLLMSession{}, nil
			},
		})
		b := uc.ExecutiveBrief(ctx, nil)
		gt.Value(t, b.Summary).Equal(usecase.BriefNoEvents)
		gt.Array(t, b.TopRisks).Length(0)
		gt.Bool(t, called).False()
	})

	t.Run("parses sections", func(t *testing.T) {
		var prompts []string
		uc := usecase.NewEnrichmentUseCase(replyingClient(`EXECUTIVE SUMMARY:
West coast ports are the main concern.

TOP 3 RISKS TO WATCH:
1. LA strike
2. Canal draft limits
3. Neon shortage`, &prompts))

		b := uc.ExecutiveBrief(ctx, events)
		gt.Value(t, b.Summary).Equal("West coast ports are the main concern.")
		gt.Value(t, b.TopRisks).Equal([]string{"LA strike", "Canal draft limits", "Neon shortage"})
		gt.Value(t, b.Error).Equal("")
		gt.String(t, prompts[0]).Contains("- [4/10] Port strike threatens West Coast logistics | Disruption | Los Angeles, USA")
	})

	t.Run("service error", func(t *testing.T) {
		b := usecase.NewEnrichmentUseCase(failingClient(errors.New("timeout"))).ExecutiveBrief(ctx, events)
		gt.String(t, b.Error).Contains("timeout")
		gt.Array(t, b.TopRisks).Length(0)
	})
}

func TestAsk(t *testing.T) {
	ctx := context.Background()
	events := []*model.Event{sampleEvent()}

	t.Run("nil client", func(t *testing.T) {
		gt.Value(t, usecase.NewEnrichmentUseCase(nil).Ask(ctx, events, "what?")).Equal(usecase.AskNoClientGuidance)
	})

	t.Run("blank question", func(t *testing.T) {
		uc := usecase.NewEnrichmentUseCase(replyingClient("unused", nil))
		gt.Value(t, uc.Ask(ctx, events, "   ")).Equal(usecase.AskEmptyQuestion)
	})

	t.Run("answer is trimmed", func(t *testing.T) {
		var prompts []string
		uc := usecase.NewEnrichmentUseCase(replyingClient("\n  The LA strike is the top risk.  \n", &prompts))
		gt.Value(t, uc.Ask(ctx, events, " Which port is at risk? ")).Equal("The LA strike is the top risk.")
		gt.String(t, prompts[0]).Contains("USER QUESTION: Which port is at risk?")
		gt.String(t, prompts[0]).Contains("using ONLY the following current events")
	})

	t.Run("error is prefixed", func(t *testing.T) {
		uc := usecase.NewEnrichmentUseCase(failingClient(errors.New("quota")))
		answer := uc.Ask(ctx, events, "anything")
		gt.Bool(t, strings.HasPrefix(answer, "Error: ")).True()
	})
}

func TestEventsContext(t *testing.T) {
	gt.Value(t, usecase.EventsContext(nil, usecase.MaxContextEvents)).Equal(usecase.NoEventsContext)

	events := make([]*model.Event, 0, 30)
	for range 30 {
		events = append(events, sampleEvent())
	}
	lines := strings.Split(usecase.EventsContext(events, usecase.MaxContextEvents), "\n")
	gt.Array(t, lines).Length(usecase.MaxContextEvents)
}
