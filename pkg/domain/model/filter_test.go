package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

func newTestEvent(risk int, cat types.Category, lat, lon float64, commodity string) *model.Event {
	return &model.Event{
		Headline:  "test",
		RiskScore: risk,
		Category:  cat,
		Latitude:  lat,
		Longitude: lon,
		Commodity: commodity,
	}
}

func TestEventFilter(t *testing.T) {
	t.Parallel()

	tokyo := newTestEvent(8, types.CategoryDisruption, 35.6, 139.7, "Electronics")
	hamburg := newTestEvent(5, types.CategoryDisruption, 53.5, 10.0, "Containers")
	houston := newTestEvent(2, types.CategoryConstruction, 29.7, -95.3, "Lumber")
	lagos := newTestEvent(7, types.CategoryConstruction, 6.5, 3.4, "Steel")
	events := []*model.Event{tokyo, hamburg, houston, lagos}

	tests := []struct {
		name   string
		filter model.EventFilter
		want   []*model.Event
	}{
		{name: "zero filter passes all", filter: model.EventFilter{}, want: events},
		{name: "high risk", filter: model.EventFilter{RiskLevel: types.RiskLevelHigh}, want: []*model.Event{tokyo, lagos}},
		{name: "medium risk", filter: model.EventFilter{RiskLevel: types.RiskLevelMedium}, want: []*model.Event{hamburg}},
		{name: "low risk", filter: model.EventFilter{RiskLevel: types.RiskLevelLow}, want: []*model.Event{houston}},
		{name: "americas", filter: model.EventFilter{Region: types.RegionAmericas}, want: []*model.Event{houston}},
		{name: "category", filter: model.EventFilter{Category: "Construction"}, want: []*model.Event{houston, lagos}},
		{name: "category all", filter: model.EventFilter{Category: model.FilterAll}, want: events},
		{name: "commodity", filter: model.EventFilter{Commodity: "Steel"}, want: []*model.Event{lagos}},
		{
			name:   "combined",
			filter: model.EventFilter{RiskLevel: types.RiskLevelHigh, Category: "Disruption"},
			want:   []*model.Event{tokyo},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.filter.Apply(events)
			gt.Array(t, got).Length(len(tt.want))
			for i := range tt.want {
				gt.Value(t, got[i]).Equal(tt.want[i])
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("empty is fully healthy", func(t *testing.T) {
		s := model.Summarize(nil)
		gt.Value(t, s.Events).Equal(0)
		gt.Value(t, s.HealthIndex).Equal(100)
	})

	t.Run("counts and penalties", func(t *testing.T) {
		events := []*model.Event{
			newTestEvent(9, types.CategoryDisruption, 0, 0, ""),
			newTestEvent(7, types.CategoryConstruction, 0, 0, ""),
			newTestEvent(3, types.CategoryDisruption, 0, 0, ""),
			newTestEvent(1, types.CategoryGeneral, 0, 0, ""),
		}
		s := model.Summarize(events)
		gt.Value(t, s).Equal(model.Stats{
			Events:       4,
			HighRisk:     2,
			Construction: 1,
			Disruptions:  2,
			HealthIndex:  100 - 2*5 - 2*3,
		})
	})

	t.Run("health index floors at zero", func(t *testing.T) {
		events := make([]*model.Event, 0, 30)
		for range 30 {
			events = append(events, newTestEvent(10, types.CategoryDisruption, 0, 0, ""))
		}
		gt.Value(t, model.HealthIndex(events)).Equal(0)
	})
}

func TestParseEventFilter(t *testing.T) {
	t.Parallel()

	f, err := model.ParseEventFilter("", "", "", "")
	gt.NoError(t, err).Required()
	gt.Value(t, f.Region).Equal(types.RegionAll)
	gt.Value(t, f.RiskLevel).Equal(types.RiskLevelAll)

	f, err = model.ParseEventFilter("Asia", "High", "Shortage", "Neon Gas")
	gt.NoError(t, err).Required()
	gt.Value(t, f).Equal(model.EventFilter{
		Region:    types.RegionAsia,
		RiskLevel: types.RiskLevelHigh,
		Category:  "Shortage",
		Commodity: "Neon Gas",
	})

	_, err = model.ParseEventFilter("Antarctica", "", "", "")
	gt.Error(t, err)
	_, err = model.ParseEventFilter("", "Extreme", "", "")
	gt.Error(t, err)
	_, err = model.ParseEventFilter("", "", "Weather", "")
	gt.Error(t, err)
}
