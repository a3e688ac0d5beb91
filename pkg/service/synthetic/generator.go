package synthetic

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/secmon-lab/vantagepoint/pkg/domain/interfaces"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// Source is the provenance of every catalog event
const Source = "Global News Wire"

// Events are dated between MinAgeHours and MaxAgeHours before generation
const (
	MinAgeHours = 1
	MaxAgeHours = 24
)

// Generator produces the curated demo catalog with fresh timestamps
type Generator struct {
	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

var _ interfaces.SyntheticGenerator = (*Generator)(nil)

// Option configures a Generator
type Option func(*Generator)

// WithClock replaces time.Now as the generation base time
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRand makes timestamp offsets reproducible
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// New creates a Generator
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a fresh copy of the catalog. Content is fixed; each
// timestamp is the generation time minus a random whole number of hours.
func (g *Generator) Generate() []*model.Event {
	base := g.now()
	events := make([]*model.Event, 0, len(catalog))
	for _, tmpl := range catalog {
		ev := tmpl
		ev.ID = model.NewEventID(ev.SourceURL, ev.Headline)
		ev.Source = Source
		ev.Timestamp = base.Add(-time.Duration(g.ageHours()) * time.Hour).Format(model.TimestampLayout)
		events = append(events, &ev)
	}
	return events
}

// Len returns the catalog size
func Len() int {
	return len(catalog)
}

func (g *Generator) ageHours() int {
	span := MaxAgeHours - MinAgeHours + 1
	if g.rng == nil {
		return MinAgeHours + rand.IntN(span)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return MinAgeHours + g.rng.IntN(span)
}

var catalog = []model.Event{
	{
		Headline:       "Massive Cement Orders for New Zone in Haiphong",
		Location:       "Haiphong, Vietnam",
		Latitude:       20.8449,
		Longitude:      106.6881,
		RiskScore:      2,
		Category:       types.CategoryConstruction,
		Commodity:      "Cement",
		Reasoning:      "Large cement inflows typically precede major infrastructure or industrial zone development.",
		ArticleSnippet: "Vietnamese port data shows a 40% spike in cement imports destined for Haiphong, signaling new development zone.",
		SourceURL:      "https://example.com/haiphong-cement",
	},
	{
		Headline:       "Steel Shipment Surge to Neom Project",
		Location:       "Tabuk, Saudi Arabia",
		Latitude:       28.3835,
		Longitude:      36.5662,
		RiskScore:      3,
		Category:       types.CategoryConstruction,
		Commodity:      "Steel",
		Reasoning:      "Neom megaproject drives sustained steel demand; supply chain is stable but high volume.",
		ArticleSnippet: "Steel deliveries to Red Sea ports for Neom have doubled in Q1, with no immediate disruption risk.",
		SourceURL:      "https://example.com/neom-steel",
	},
	{
		Headline:       "Lumber Stockpiling Detected in Texas Port",
		Location:       "Houston, USA",
		Latitude:       29.7604,
		Longitude:      -95.3698,
		RiskScore:      4,
		Category:       types.CategoryConstruction,
		Commodity:      "Lumber",
		Reasoning:      "Pre-hurricane or pre-development stockpiling; monitor for demand spikes in housing.",
		ArticleSnippet: "Houston port logs show unusual lumber inventory build-up, possibly for residential or commercial projects.",
		SourceURL:      "https://example.com/houston-lumber",
	},
	{
		Headline:       "New Battery Plant Foundation Laid",
		Location:       "Debrecen, Hungary",
		Latitude:       47.5316,
		Longitude:      21.6273,
		RiskScore:      2,
		Category:       types.CategoryConstruction,
		Commodity:      "Concrete",
		Reasoning:      "EV supply chain expansion in Europe; concrete and steel flows confirm construction phase.",
		ArticleSnippet: "Major EV battery facility construction begins in Debrecen with concrete and steel deliveries ramping.",
		SourceURL:      "https://example.com/debrecen-battery",
	},
	{
		Headline:       "Copper Wiring Imports Spike 400%",
		Location:       "Chennai, India",
		Latitude:       13.0827,
		Longitude:      80.2707,
		RiskScore:      3,
		Category:       types.CategoryConstruction,
		Commodity:      "Copper",
		Reasoning:      "Data center and grid expansion in India driving copper demand; supply adequate.",
		ArticleSnippet: "Chennai port reports a 400% increase in copper wiring imports over previous quarter.",
		SourceURL:      "https://example.com/chennai-copper",
	},
	{
		Headline:       "Infrastructure Expansion: Bridge Materials Arriving",
		Location:       "Lagos, Nigeria",
		Latitude:       6.5244,
		Longitude:      3.3792,
		RiskScore:      5,
		Category:       types.CategoryConstruction,
		Commodity:      "Steel",
		Reasoning:      "Major infrastructure project in Lagos; geopolitical and logistics risks moderate.",
		ArticleSnippet: "Steel and concrete shipments for new bridge and road projects are arriving at Lagos port.",
		SourceURL:      "https://example.com/lagos-bridge",
	},
	{
		Headline:       "Port Strike Threatens West Coast Logistics",
		Location:       "Los Angeles, USA",
		Latitude:       34.0522,
		Longitude:      -118.2437,
		RiskScore:      9,
		Category:       types.CategoryDisruption,
		Commodity:      "General Cargo",
		Reasoning:      "Labor action at major port will delay container flows and increase lead times across sectors.",
		ArticleSnippet: "Union vote authorizes strike at LA/Long Beach; shippers brace for delays.",
		SourceURL:      "https://example.com/la-strike",
	},
	{
		Headline:       "Panama Canal Drought Restricts Draft",
		Location:       "Panama City, Panama",
		Latitude:       8.9824,
		Longitude:      -79.5199,
		RiskScore:      8,
		Category:       types.CategoryDisruption,
		Commodity:      "All",
		Reasoning:      "Draft restrictions reduce capacity and increase transit times for Asia–US East routes.",
		ArticleSnippet: "Canal authority limits vessel draft due to drought; some cargo must reroute.",
		SourceURL:      "https://example.com/panama-canal",
	},
	{
		Headline:       "Typhoon Warnings Halt Shipping Lanes",
		Location:       "Manila, Philippines",
		Latitude:       14.5995,
		Longitude:      120.9842,
		RiskScore:      7,
		Category:       types.CategoryDisruption,
		Commodity:      "Electronics",
		Reasoning:      "Weather-related port closures will delay electronics and component shipments.",
		ArticleSnippet: "Typhoon forces closure of Manila port; shipping lanes suspended for 48h.",
		SourceURL:      "https://example.com/manila-typhoon",
	},
	{
		Headline:       "Railway Union Protest Blocks Freight",
		Location:       "Hamburg, Germany",
		Latitude:       53.5511,
		Longitude:      9.9937,
		RiskScore:      6,
		Category:       types.CategoryDisruption,
		Commodity:      "Auto Parts",
		Reasoning:      "Rail blockades in Germany affect inland distribution of auto and industrial parts.",
		ArticleSnippet: "Protest action blocks key rail lines; automotive supply chain impacted.",
		SourceURL:      "https://example.com/hamburg-rail",
	},
	{
		Headline:       "Customs System Outage Delays Clearance",
		Location:       "Felixstowe, UK",
		Latitude:       51.9617,
		Longitude:      1.3513,
		RiskScore:      5,
		Category:       types.CategoryDisruption,
		Commodity:      "Retail Goods",
		Reasoning:      "IT outage at major UK port causes clearance delays; expected short-term.",
		ArticleSnippet: "Customs system failure at Felixstowe leads to container backlog.",
		SourceURL:      "https://example.com/felixstowe",
	},
	{
		Headline:       "Chip Fab Contamination Halts Production",
		Location:       "Hsinchu, Taiwan",
		Latitude:       24.8138,
		Longitude:      120.9675,
		RiskScore:      9,
		Category:       types.CategoryManufacturing,
		Commodity:      "Semiconductors",
		Reasoning:      "Fab contamination can cause multi-week shutdowns and ripple through electronics supply.",
		ArticleSnippet: "Major semiconductor fab in Hsinchu halts production due to contamination incident.",
		SourceURL:      "https://example.com/hsinchu-fab",
	},
	{
		Headline:       "Foxconn Factory Power Outage",
		Location:       "Zhengzhou, China",
		Latitude:       34.7466,
		Longitude:      113.6253,
		RiskScore:      7,
		Category:       types.CategoryManufacturing,
		Commodity:      "Consumer Electronics",
		Reasoning:      "Power issues at key assembly site risk smartphone and device delivery delays.",
		ArticleSnippet: "Power outage at Foxconn Zhengzhou facility disrupts production lines.",
		SourceURL:      "https://example.com/foxconn",
	},
	{
		Headline:       "Auto Assembly Line Paused Missing Parts",
		Location:       "Wolfsburg, Germany",
		Latitude:       52.4227,
		Longitude:      10.7865,
		RiskScore:      6,
		Category:       types.CategoryManufacturing,
		Commodity:      "Automotive",
		Reasoning:      "Component shortage forces line stoppage; reinforces need for dual sourcing.",
		ArticleSnippet: "VW Wolfsburg pauses assembly due to missing components from Asia.",
		SourceURL:      "https://example.com/wolfsburg",
	},
	{
		Headline:       "Textile Mill Fire Impacts Holiday Orders",
		Location:       "Dhaka, Bangladesh",
		Latitude:       23.8103,
		Longitude:      90.4125,
		RiskScore:      5,
		Category:       types.CategoryManufacturing,
		Commodity:      "Textiles",
		Reasoning:      "Fire at single facility; apparel brands may shift orders to other suppliers.",
		ArticleSnippet: "Fire at major textile mill in Dhaka raises concerns for holiday apparel supply.",
		SourceURL:      "https://example.com/dhaka-textile",
	},
	{
		Headline:       "Critical Neon Gas Shortage for Lasers",
		Location:       "Odessa, Ukraine",
		Latitude:       46.4825,
		Longitude:      30.7233,
		RiskScore:      8,
		Category:       types.CategoryShortage,
		Commodity:      "Neon Gas",
		Reasoning:      "Neon is critical for chip lithography; shortage from Ukraine affects semiconductor production.",
		ArticleSnippet: "Neon gas supply from Ukraine remains constrained; chip makers seek alternatives.",
		SourceURL:      "https://example.com/neon-ukraine",
	},
	{
		Headline:       "Cocoa Bean Supply Drop Hits Chocolate Makers",
		Location:       "Abidjan, Ivory Coast",
		Latitude:       5.36,
		Longitude:      -4.0083,
		RiskScore:      4,
		Category:       types.CategoryShortage,
		Commodity:      "Food",
		Reasoning:      "Weather and disease reduce cocoa output; chocolate and confectionery costs to rise.",
		ArticleSnippet: "Cocoa harvest in Ivory Coast falls short; chocolate manufacturers warn of price increases.",
		SourceURL:      "https://example.com/cocoa",
	},
	{
		Headline:       "Lithium Pricing Surge Signals Scarcity",
		Location:       "Antofagasta, Chile",
		Latitude:       -23.6509,
		Longitude:      -70.3975,
		RiskScore:      6,
		Category:       types.CategoryShortage,
		Commodity:      "Lithium",
		Reasoning:      "Lithium demand for EVs outstrips supply; battery and EV production at risk.",
		ArticleSnippet: "Lithium prices hit new highs as demand from EV sector continues to grow.",
		SourceURL:      "https://example.com/lithium",
	},
	{
		Headline:       "New Sanctions Block Tech Exports",
		Location:       "Moscow, Russia",
		Latitude:       55.7558,
		Longitude:      37.6173,
		RiskScore:      8,
		Category:       types.CategoryGeopolitical,
		Commodity:      "Technology",
		Reasoning:      "Export controls will disrupt tech supply chains and force redesign of sourcing.",
		ArticleSnippet: "Latest sanctions prohibit export of advanced chips and equipment to Russia.",
		SourceURL:      "https://example.com/sanctions-tech",
	},
	{
		Headline:       "Trade Route Blockade in Red Sea",
		Location:       "Suez, Egypt",
		Latitude:       29.9668,
		Longitude:      32.5498,
		RiskScore:      9,
		Category:       types.CategoryGeopolitical,
		Commodity:      "Oil/Gas",
		Reasoning:      "Red Sea attacks force rerouting via Cape; longer transit and higher freight costs.",
		ArticleSnippet: "Persistent attacks force major carriers to avoid Red Sea; Suez traffic drops.",
		SourceURL:      "https://example.com/red-sea",
	},
	{
		Headline:       "Rare Earth Export Restrictions Announced",
		Location:       "Beijing, China",
		Latitude:       39.9042,
		Longitude:      116.4074,
		RiskScore:      7,
		Category:       types.CategoryGeopolitical,
		Commodity:      "Rare Earths",
		Reasoning:      "Export curbs on rare earths affect magnets and EV/high-tech manufacturing globally.",
		ArticleSnippet: "China announces new export controls on rare earth elements and processing tech.",
		SourceURL:      "https://example.com/rare-earth",
	},
	{
		Headline:       "Earthquake Damages Port Infrastructure",
		Location:       "Istanbul, Turkey",
		Latitude:       41.0082,
		Longitude:      28.9784,
		RiskScore:      7,
		Category:       types.CategoryDisruption,
		Commodity:      "General Cargo",
		Reasoning:      "Port damage from quake disrupts Black Sea and Mediterranean logistics.",
		ArticleSnippet: "Strong earthquake causes damage to port facilities; operations partially suspended.",
		SourceURL:      "https://example.com/istanbul-quake",
	},
	{
		Headline:       "Flooding Closes Key Highway to Port",
		Location:       "Vancouver, Canada",
		Latitude:       49.2827,
		Longitude:      -123.1207,
		RiskScore:      6,
		Category:       types.CategoryDisruption,
		Commodity:      "Lumber",
		Reasoning:      "Highway closure blocks trucking to port; lumber and grain exports delayed.",
		ArticleSnippet: "Flooding on Trans-Canada Highway disrupts cargo movement to Vancouver port.",
		SourceURL:      "https://example.com/vancouver-flood",
	},
	{
		Headline:       "RETROSPECTIVE: Unusual Spike in Medical Glove Exports",
		Location:       "Wuhan, China",
		Latitude:       30.5928,
		Longitude:      114.3055,
		RiskScore:      10,
		Category:       types.CategoryShortage,
		Commodity:      "Medical Supplies",
		Reasoning:      "Historical signal: Dec 2019 medical supply spikes preceded COVID-19 pandemic.",
		ArticleSnippet: "RETROSPECTIVE: Data showed abnormal medical glove and PPE exports from Wuhan in late 2019.",
		SourceURL:      "https://example.com/wuhan-retro",
	},
	{
		Headline:       "RETROSPECTIVE: Ventilator Parts Orders Triple",
		Location:       "Lombardy, Italy",
		Latitude:       45.4642,
		Longitude:      9.19,
		RiskScore:      9,
		Category:       types.CategoryShortage,
		Commodity:      "Medical Devices",
		Reasoning:      "Historical signal: Surge in ventilator parts orders preceded severe COVID wave in Italy.",
		ArticleSnippet: "RETROSPECTIVE: Ventilator and ICU equipment orders spiked in Lombardy in early 2020.",
		SourceURL:      "https://example.com/lombardy-retro",
	},
	{
		Headline:       "Container Freight Index Holds Steady",
		Location:       "Singapore",
		Latitude:       1.3521,
		Longitude:      103.8198,
		RiskScore:      2,
		Category:       types.CategoryGeneral,
		Commodity:      "Containers",
		Reasoning:      "Baseline signal: stable spot rates on Asia-Europe lanes indicate balanced capacity.",
		ArticleSnippet: "Weekly container freight benchmarks were flat as carriers matched capacity to demand.",
		SourceURL:      "https://example.com/freight-index",
	},
}
