package model

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// EventCSVHeader is the column order of WriteEventsCSV. It covers every
// event field; gemini_analysis holds the JSON encoding of the analysis
// result and is empty when the event was never analyzed.
var EventCSVHeader = []string{
	"id", "timestamp", "headline", "location", "latitude", "longitude",
	"risk_score", "category", "commodity", "reasoning", "article_snippet",
	"source_url", "source", "gemini_analysis",
}

// CSVRecord returns the event as one row matching EventCSVHeader
func (e *Event) CSVRecord() ([]string, error) {
	var analysis string
	if e.GeminiAnalysis != nil {
		raw, err := json.Marshal(e.GeminiAnalysis)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode analysis", goerr.V("event_id", e.ID))
		}
		analysis = string(raw)
	}

	return []string{
		e.ID,
		e.Timestamp,
		e.Headline,
		e.Location,
		strconv.FormatFloat(e.Latitude, 'f', 4, 64),
		strconv.FormatFloat(e.Longitude, 'f', 4, 64),
		strconv.Itoa(e.RiskScore),
		e.Category.String(),
		e.Commodity,
		e.Reasoning,
		e.ArticleSnippet,
		e.SourceURL,
		e.Source,
		analysis,
	}, nil
}

// WriteEventsCSV writes a header row followed by one row per event
func WriteEventsCSV(w io.Writer, events []*Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EventCSVHeader); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, ev := range events {
		if ev == nil {
			continue
		}
		record, err := ev.CSVRecord()
		if err != nil {
			return err
		}
		if err := cw.Write(record); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("event_id", ev.ID))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}
