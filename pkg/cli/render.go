package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// Output formats of the fetch command
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

const maxHeadlineWidth = 72

var (
	highRiskColor   = color.New(color.FgRed, color.Bold)
	mediumRiskColor = color.New(color.FgYellow)
	lowRiskColor    = color.New(color.FgGreen)
	headerColor     = color.New(color.Bold)
	warnColor       = color.New(color.FgYellow)
)

func riskColor(score int) *color.Color {
	switch {
	case score >= types.HighRiskThreshold:
		return highRiskColor
	case types.RiskLevelMedium.Contains(score):
		return mediumRiskColor
	default:
		return lowRiskColor
	}
}

func writeEvents(w io.Writer, format string, acq *model.Acquisition) error {
	switch format {
	case formatTable, "":
		return writeEventTable(w, acq)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(acq); err != nil {
			return goerr.Wrap(err, "failed to encode events")
		}
		return nil
	case formatCSV:
		return model.WriteEventsCSV(w, acq.Events)
	default:
		return goerr.New("unsupported output format", goerr.V("format", format))
	}
}

// writeEventTable prints notices, headline stats and one row per event
func writeEventTable(w io.Writer, acq *model.Acquisition) error {
	for _, n := range acq.Notices {
		if n.Level == model.NoticeWarning {
			if _, err := warnColor.Fprintf(w, "! %s\n", n.Message); err != nil {
				return goerr.Wrap(err, "failed to write notice")
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s\n", n.Message); err != nil {
			return goerr.Wrap(err, "failed to write notice")
		}
	}

	stats := model.Summarize(acq.Events)
	if _, err := headerColor.Fprintf(w, "source=%s events=%d high_risk=%d construction=%d disruptions=%d health=%d\n\n",
		acq.Source.DisplayName(), stats.Events, stats.HighRisk, stats.Construction, stats.Disruptions, stats.HealthIndex); err != nil {
		return goerr.Wrap(err, "failed to write stats")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tRISK\tCATEGORY\tLOCATION\tHEADLINE\tSOURCE")
	for _, ev := range acq.Events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ev.Timestamp,
			riskColor(ev.RiskScore).Sprintf("%2d", ev.RiskScore),
			ev.Category,
			ev.Location,
			clip(ev.Headline, maxHeadlineWidth),
			ev.Source,
		)
	}
	if err := tw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to write event table")
	}
	return nil
}

func writeAnalysis(w io.Writer, ev *model.Event) {
	res := ev.GeminiAnalysis
	if res == nil {
		return
	}
	if res.Failed() {
		warnColor.Fprintf(w, "    analysis failed: %s\n", res.ErrorMessage())
		return
	}
	a := res.Analysis()
	fmt.Fprintf(w, "    %s [%s] %s\n", riskColor(a.RiskScore).Sprintf("risk %d", a.RiskScore), a.Category, a.Reasoning)
	if a.ActionableIntelligence != "" {
		fmt.Fprintf(w, "    action: %s\n", a.ActionableIntelligence)
	}
	if len(a.AffectedIndustries) > 0 {
		fmt.Fprintf(w, "    industries: %s\n", strings.Join(a.AffectedIndustries, ", "))
	}
	if a.ConstructionPrediction != nil {
		fmt.Fprintf(w, "    construction: %s\n", *a.ConstructionPrediction)
	}
}

func writeBrief(w io.Writer, b *model.Brief) {
	if b.Error != "" {
		warnColor.Fprintf(w, "%s\n", b.Error)
		return
	}
	headerColor.Fprintln(w, "Executive summary")
	fmt.Fprintf(w, "%s\n", b.Summary)
	if len(b.TopRisks) == 0 {
		return
	}
	headerColor.Fprintln(w, "\nTop risks to watch")
	for i, r := range b.TopRisks {
		fmt.Fprintf(w, "%d. %s\n", i+1, r)
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
