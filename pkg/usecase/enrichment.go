package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
	"github.com/secmon-lab/vantagepoint/pkg/utils/metrics"
)

//go:embed prompt/analyze_event.md
var analyzeEventPromptTmpl string

//go:embed prompt/executive_brief.md
var executiveBriefPromptTmpl string

//go:embed prompt/ask.md
var askPromptTmpl string

var (
	analyzeEventPrompt   = template.Must(template.New("analyze_event").Parse(analyzeEventPromptTmpl))
	executiveBriefPrompt = template.Must(template.New("executive_brief").Parse(executiveBriefPromptTmpl))
	askPrompt            = template.Must(template.New("ask").Parse(askPromptTmpl))
)

// MaxContextEvents bounds how many events are embedded in brief and Q&A prompts
const MaxContextEvents = 20

// Fixed answers returned without calling the AI service
const (
	BriefNoClientError  = "No API key"
	BriefNoEvents       = "No events to summarize."
	AskNoClientGuidance = "Please configure a Gemini project to ask questions."
	AskEmptyQuestion    = "Please enter a question."
	NoEventsContext     = "No events in the current view."
)

const analystSystemPrompt = "You are a supply chain intelligence analyst."

// AI operation names recorded in metrics
const (
	opAnalyze = "analyze"
	opBrief   = "brief"
	opAsk     = "ask"
)

// EnrichmentUseCase runs the three stateless AI operations
type EnrichmentUseCase struct {
	llmClient gollem.LLMClient
}

// NewEnrichmentUseCase creates the use case. llmClient may be nil.
func NewEnrichmentUseCase(llmClient gollem.LLMClient) *EnrichmentUseCase {
	return &EnrichmentUseCase{llmClient: llmClient}
}

// Enabled reports whether an AI client is configured
func (uc *EnrichmentUseCase) Enabled() bool {
	return uc.llmClient != nil
}

// AnalyzeEvent asks the AI service for a structured assessment of one event.
// Without a client the event is returned unchanged. Otherwise a copy is
// returned: on success its risk, category and reasoning are replaced by the
// analysis, on failure only an error marker is attached. The input is never
// modified.
func (uc *EnrichmentUseCase) AnalyzeEvent(ctx context.Context, ev *model.Event) *model.Event {
	if uc.llmClient == nil || ev == nil {
		return ev
	}

	out := ev.Clone()
	analysis, err := uc.analyze(ctx, ev)
	if err != nil {
		metrics.ObserveAI(opAnalyze, outcomeError)
		logging.From(ctx).Warn("Event analysis failed",
			slog.String("event_id", ev.ID), slog.Any("error", err))
		out.GeminiAnalysis = model.NewAnalysisError(err.Error())
		return out
	}
	metrics.ObserveAI(opAnalyze, outcomeOK)

	out.RiskScore = analysis.RiskScore
	if cat, err := types.ParseCategory(analysis.Category); err == nil {
		out.Category = cat
	}
	out.Reasoning = analysis.Reasoning
	out.GeminiAnalysis = model.NewAnalysisSuccess(analysis)
	return out
}

func (uc *EnrichmentUseCase) analyze(ctx context.Context, ev *model.Event) (*model.Analysis, error) {
	var buf bytes.Buffer
	if err := analyzeEventPrompt.Execute(&buf, struct {
		Headline   string
		Location   string
		Snippet    string
		Categories []types.Category
	}{
		Headline:   ev.Headline,
		Location:   ev.Location,
		Snippet:    ev.ArticleSnippet,
		Categories: types.AllCategories(),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to render analysis prompt")
	}

	session, err := uc.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(analysisSchema()),
		gollem.WithSessionSystemPrompt(analystSystemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(buf.String())})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate analysis")
	}

	return model.ParseAnalysis(strings.Join(resp.Texts, ""))
}

// ExecutiveBrief summarizes up to MaxContextEvents events into a summary and top risks
func (uc *EnrichmentUseCase) ExecutiveBrief(ctx context.Context, events []*model.Event) *model.Brief {
	if uc.llmClient == nil {
		return &model.Brief{TopRisks: []string{}, Error: BriefNoClientError}
	}
	if len(events) == 0 {
		return &model.Brief{Summary: BriefNoEvents, TopRisks: []string{}}
	}

	text, err := uc.generateText(ctx, executiveBriefPrompt, struct{ Context string }{
		Context: EventsContext(events, MaxContextEvents),
	})
	if err != nil {
		metrics.ObserveAI(opBrief, outcomeError)
		logging.From(ctx).Warn("Executive brief failed", slog.Any("error", err))
		return &model.Brief{TopRisks: []string{}, Error: err.Error()}
	}
	metrics.ObserveAI(opBrief, outcomeOK)

	return model.ParseBrief(text)
}

// Ask answers a free-form question grounded on the given events. Failures
// are returned as text prefixed with "Error: ".
func (uc *EnrichmentUseCase) Ask(ctx context.Context, events []*model.Event, question string) string {
	if uc.llmClient == nil {
		return AskNoClientGuidance
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return AskEmptyQuestion
	}

	text, err := uc.generateText(ctx, askPrompt, struct{ Context, Question string }{
		Context:  EventsContext(events, MaxContextEvents),
		Question: question,
	})
	if err != nil {
		metrics.ObserveAI(opAsk, outcomeError)
		logging.From(ctx).Warn("Question answering failed", slog.Any("error", err))
		return "Error: " + err.Error()
	}
	metrics.ObserveAI(opAsk, outcomeOK)

	return text
}

func (uc *EnrichmentUseCase) generateText(ctx context.Context, tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt", goerr.V("template", tmpl.Name()))
	}

	session, err := uc.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(buf.String())})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.V("template", tmpl.Name()))
	}

	return strings.TrimSpace(strings.Join(resp.Texts, "")), nil
}

// EventsContext renders at most limit events, one per line, as
// "- [risk/10] headline | category | location"
func EventsContext(events []*model.Event, limit int) string {
	if len(events) == 0 {
		return NoEventsContext
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	lines := make([]string, 0, len(events))
	for _, ev := range events {
		if ev == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- [%d/10] %s | %s | %s", ev.RiskScore, ev.Headline, ev.Category, ev.Location))
	}
	return strings.Join(lines, "\n")
}

// analysisSchema is the structured output contract for AnalyzeEvent
func analysisSchema() *gollem.Parameter {
	categories := make([]string, 0, len(types.AllCategories()))
	for _, c := range types.AllCategories() {
		categories = append(categories, c.String())
	}

	minRisk, maxRisk := float64(model.MinAIRiskScore), float64(model.MaxAIRiskScore)

	stringList := func(desc string) *gollem.Parameter {
		return &gollem.Parameter{
			Type:        gollem.TypeArray,
			Description: desc,
			Items:       &gollem.Parameter{Type: gollem.TypeString},
		}
	}

	return &gollem.Parameter{
		Title:       "EventAnalysis",
		Description: "Structured assessment of a single supply chain event",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"risk_score": {
				Type:        gollem.TypeInteger,
				Description: "Risk from 1 (negligible) to 10 (severe)",
				Minimum:     &minRisk,
				Maximum:     &maxRisk,
				Required:    true,
			},
			"category": {
				Type:        gollem.TypeString,
				Description: "Event category",
				Enum:        categories,
				Required:    true,
			},
			"affected_industries": stringList("Industries likely to feel the impact"),
			"geographic_ripple":   stringList("Countries or regions the effect may spread to"),
			"timeline": {
				Type:        gollem.TypeObject,
				Description: "Predicted development over three horizons",
				Properties: map[string]*gollem.Parameter{
					"short_term":  {Type: gollem.TypeString, Description: "1-7 days", Required: true},
					"medium_term": {Type: gollem.TypeString, Description: "1-4 weeks", Required: true},
					"long_term":   {Type: gollem.TypeString, Description: "1-6 months", Required: true},
				},
				Required: true,
			},
			"reasoning": {
				Type:        gollem.TypeString,
				Description: "2-3 sentence explanation",
				Required:    true,
			},
			"actionable_intelligence": {
				Type:        gollem.TypeString,
				Description: "What to monitor next",
			},
			"is_construction_related": {
				Type:        gollem.TypeBoolean,
				Description: "Whether the event signals construction activity",
			},
			"construction_prediction": {
				Type:        gollem.TypeString,
				Description: "What is being built, empty when not construction related",
			},
		},
	}
}
