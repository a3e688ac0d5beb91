package model

import (
	"strings"
	"unicode"
)

// Section markers the executive brief prompt asks the AI service to emit
const (
	BriefSummaryMarker = "EXECUTIVE SUMMARY:"
	BriefRisksMarker   = "TOP 3 RISKS"

	MaxBriefRisks = 3
)

// Brief is the multi-event executive summary
type Brief struct {
	Summary  string   `json:"summary"`
	TopRisks []string `json:"top_risks"`
	Error    string   `json:"error,omitempty"`
}

// ParseBrief splits free-text brief output into summary and top risks.
//
// Grammar: optional preamble, the summary marker, summary text, a line
// containing the risks marker, then numbered risk lines. When either marker
// is missing (or they are out of order) the whole trimmed text becomes the
// summary and no risks are returned.
func ParseBrief(text string) *Brief {
	t := strings.TrimSpace(text)
	brief := &Brief{Summary: t, TopRisks: []string{}}

	si := strings.Index(t, BriefSummaryMarker)
	ri := strings.Index(t, BriefRisksMarker)
	if si < 0 || ri < 0 || ri < si {
		return brief
	}

	if summary := strings.TrimSpace(t[si+len(BriefSummaryMarker) : ri]); summary != "" {
		brief.Summary = summary
	}

	// skip the remainder of the marker line, e.g. " TO WATCH:"
	block := t[ri:]
	if nl := strings.IndexByte(block, '\n'); nl >= 0 {
		block = block[nl+1:]
	} else {
		block = ""
	}

	for line := range strings.SplitSeq(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !unicode.IsDigit(rune(line[0])) {
			continue
		}
		risk := strings.TrimSpace(strings.TrimLeft(line, "0123456789.)- "))
		if risk == "" {
			continue
		}
		brief.TopRisks = append(brief.TopRisks, risk)
		if len(brief.TopRisks) == MaxBriefRisks {
			break
		}
	}

	return brief
}
