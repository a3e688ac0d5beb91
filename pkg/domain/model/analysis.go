package model

import (
	"encoding/json"
	"math"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// AI risk scores are bounded tighter than heuristic scores
const (
	MinAIRiskScore     = 1
	MaxAIRiskScore     = 10
	DefaultAIRiskScore = 5
)

// Timeline is the AI forecast split into three horizons
type Timeline struct {
	ShortTerm  string `json:"short_term"`
	MediumTerm string `json:"medium_term"`
	LongTerm   string `json:"long_term"`
}

// Analysis is the structured single-event enrichment returned by the AI service
type Analysis struct {
	RiskScore              int      `json:"risk_score"`
	Category               string   `json:"category"`
	AffectedIndustries     []string `json:"affected_industries"`
	GeographicRipple       []string `json:"geographic_ripple"`
	Timeline               Timeline `json:"timeline"`
	Reasoning              string   `json:"reasoning"`
	ActionableIntelligence string   `json:"actionable_intelligence"`
	IsConstructionRelated  bool     `json:"is_construction_related"`
	ConstructionPrediction *string  `json:"construction_prediction"`
}

// AnalysisResult is attached to an event once enrichment ran. It holds either
// an error marker or a full analysis, never both.
type AnalysisResult struct {
	err      string
	analysis *Analysis
}

// NewAnalysisError builds an error-tagged result
func NewAnalysisError(msg string) *AnalysisResult {
	if msg == "" {
		msg = "analysis failed"
	}
	return &AnalysisResult{err: msg}
}

// NewAnalysisSuccess builds a result carrying the analysis payload
func NewAnalysisSuccess(a *Analysis) *AnalysisResult {
	return &AnalysisResult{analysis: a}
}

// Failed reports whether the result is an error marker
func (r *AnalysisResult) Failed() bool {
	return r != nil && r.err != ""
}

// ErrorMessage returns the error marker, empty on success
func (r *AnalysisResult) ErrorMessage() string {
	if r == nil {
		return ""
	}
	return r.err
}

// Analysis returns the payload, nil on failure
func (r *AnalysisResult) Analysis() *Analysis {
	if r == nil {
		return nil
	}
	return r.analysis
}

// Clone returns a deep copy of the result
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	c := &AnalysisResult{err: r.err}
	if r.analysis != nil {
		a := *r.analysis
		a.AffectedIndustries = slices.Clone(r.analysis.AffectedIndustries)
		a.GeographicRipple = slices.Clone(r.analysis.GeographicRipple)
		if r.analysis.ConstructionPrediction != nil {
			p := *r.analysis.ConstructionPrediction
			a.ConstructionPrediction = &p
		}
		c.analysis = &a
	}
	return c
}

type analysisErrorJSON struct {
	Error string `json:"error"`
}

// MarshalJSON encodes either {"error": ...} or the analysis payload
func (r *AnalysisResult) MarshalJSON() ([]byte, error) {
	if r.err != "" {
		return json.Marshal(analysisErrorJSON{Error: r.err})
	}
	return json.Marshal(r.analysis)
}

// UnmarshalJSON accepts the two shapes written by MarshalJSON
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return goerr.Wrap(err, "failed to decode gemini_analysis")
	}
	if raw, ok := fields["error"]; ok {
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			return goerr.Wrap(err, "failed to decode gemini_analysis error")
		}
		*r = *NewAnalysisError(msg)
		return nil
	}

	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return goerr.Wrap(err, "failed to decode gemini_analysis payload")
	}
	*r = AnalysisResult{analysis: &a}
	return nil
}

// analysisWire mirrors Analysis but tolerates a fractional or missing risk score
type analysisWire struct {
	RiskScore              *float64 `json:"risk_score"`
	Category               string   `json:"category"`
	AffectedIndustries     []string `json:"affected_industries"`
	GeographicRipple       []string `json:"geographic_ripple"`
	Timeline               Timeline `json:"timeline"`
	Reasoning              string   `json:"reasoning"`
	ActionableIntelligence string   `json:"actionable_intelligence"`
	IsConstructionRelated  bool     `json:"is_construction_related"`
	ConstructionPrediction *string  `json:"construction_prediction"`
}

// ParseAnalysis decodes the AI service output for single-event analysis.
// The text may be wrapped in a Markdown code fence, optionally tagged json.
// The returned risk score is already clamped into [1,10].
func ParseAnalysis(text string) (*Analysis, error) {
	body := StripCodeFence(text)
	if body == "" {
		return nil, goerr.Wrap(ErrInvalidResponse, "empty analysis response")
	}
	if !strings.HasPrefix(body, "{") {
		return nil, goerr.Wrap(ErrInvalidResponse, "analysis response is not a JSON object",
			goerr.V("response", body))
	}

	var wire analysisWire
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return nil, goerr.Wrap(ErrInvalidResponse, "JSON parse failed",
			goerr.V("cause", err.Error()), goerr.V("response", body))
	}

	score := DefaultAIRiskScore
	if wire.RiskScore != nil && !math.IsNaN(*wire.RiskScore) {
		score = ClampAIRiskScore(int(math.Max(-1, math.Min(*wire.RiskScore, 100))))
	}

	return &Analysis{
		RiskScore:              score,
		Category:               strings.TrimSpace(wire.Category),
		AffectedIndustries:     wire.AffectedIndustries,
		GeographicRipple:       wire.GeographicRipple,
		Timeline:               wire.Timeline,
		Reasoning:              wire.Reasoning,
		ActionableIntelligence: wire.ActionableIntelligence,
		IsConstructionRelated:  wire.IsConstructionRelated,
		ConstructionPrediction: wire.ConstructionPrediction,
	}, nil
}

// ClampAIRiskScore bounds an AI score into [1,10]
func ClampAIRiskScore(score int) int {
	return min(MaxAIRiskScore, max(MinAIRiskScore, score))
}

// StripCodeFence removes a surrounding ``` fence (with optional "json" tag)
// and returns the trimmed body. Text without a fence is returned trimmed.
func StripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}

	t = strings.TrimPrefix(t, "```")
	if end := strings.Index(t, "```"); end >= 0 {
		t = t[:end]
	}
	if len(t) >= 4 && strings.EqualFold(t[:4], "json") {
		t = t[4:]
	}
	return strings.TrimSpace(t)
}
