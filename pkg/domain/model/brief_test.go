package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
)

func TestParseBrief(t *testing.T) {
	t.Parallel()

	t.Run("well formed", func(t *testing.T) {
		text := `Here is the brief.
EXECUTIVE SUMMARY:
Port congestion on the US west coast is the dominant theme.

TOP 3 RISKS TO WATCH:
1. LA port strike
2) Red Sea diversions
3 - Neon gas shortage
4. Should be dropped`

		b := model.ParseBrief(text)
		gt.Value(t, b.Summary).Equal("Port congestion on the US west coast is the dominant theme.")
		gt.Array(t, b.TopRisks).Length(3)
		gt.Value(t, b.TopRisks[0]).Equal("LA port strike")
		gt.Value(t, b.TopRisks[1]).Equal("Red Sea diversions")
		gt.Value(t, b.TopRisks[2]).Equal("Neon gas shortage")
	})

	t.Run("non numbered lines are ignored", func(t *testing.T) {
		b := model.ParseBrief("EXECUTIVE SUMMARY: calm\nTOP 3 RISKS:\n- bullet\n1. real one\n")
		gt.Value(t, b.Summary).Equal("calm")
		gt.Array(t, b.TopRisks).Length(1)
		gt.Value(t, b.TopRisks[0]).Equal("real one")
	})

	t.Run("missing markers keeps whole text", func(t *testing.T) {
		b := model.ParseBrief("  Everything looks fine.  ")
		gt.Value(t, b.Summary).Equal("Everything looks fine.")
		gt.True(t, b.TopRisks != nil)
		gt.Array(t, b.TopRisks).Length(0)
	})

	t.Run("markers out of order", func(t *testing.T) {
		text := "TOP 3 RISKS:\n1. a\nEXECUTIVE SUMMARY: b"
		b := model.ParseBrief(text)
		gt.Value(t, b.Summary).Equal(text)
		gt.Array(t, b.TopRisks).Length(0)
	})

	t.Run("risks marker on last line", func(t *testing.T) {
		b := model.ParseBrief("EXECUTIVE SUMMARY: ok\nTOP 3 RISKS TO WATCH:")
		gt.Value(t, b.Summary).Equal("ok")
		gt.Array(t, b.TopRisks).Length(0)
	})
}
