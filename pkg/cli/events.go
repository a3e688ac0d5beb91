package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vantagepoint/pkg/cli/config"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/usecase"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// appConfig bundles the configuration every event command needs
type appConfig struct {
	source config.Source
	gemini config.Gemini
}

func (a *appConfig) Flags() []cli.Flag {
	flags := a.source.Flags()
	return append(flags, a.gemini.Flags()...)
}

// Configure builds the use cases from the source and Gemini configuration
func (a *appConfig) Configure(ctx context.Context) (*usecase.UseCases, error) {
	srcs, err := a.source.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure sources")
	}

	llmClient, err := a.gemini.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure Gemini")
	}

	opts := srcs.UseCaseOptions()
	if llmClient != nil {
		opts = append(opts, usecase.WithLLMClient(llmClient))
		logging.From(ctx).Info("Gemini enabled", "gemini", a.gemini.LogAttrs())
	} else {
		logging.From(ctx).Info("Gemini project not configured, AI features are disabled")
	}

	logging.From(ctx).Debug("Sources configured", "source", a.source.LogAttrs())
	return usecase.New(opts...), nil
}

// eventQuery is the mode and filter selection shared by fetch, brief and ask
type eventQuery struct {
	mode      string
	region    string
	risk      string
	category  string
	commodity string
}

func (q *eventQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mode",
			Aliases:     []string{"m"},
			Usage:       "Data mode [live|synthetic]",
			Category:    "Events",
			Value:       string(types.DataModeLive),
			Sources:     cli.EnvVars("VANTAGEPOINT_MODE"),
			Destination: &q.mode,
		},
		&cli.StringFlag{
			Name:        "region",
			Usage:       "Region filter [All|Asia|Europe|Americas|Africa]",
			Category:    "Events",
			Destination: &q.region,
		},
		&cli.StringFlag{
			Name:        "risk",
			Usage:       "Risk level filter [All|Low|Medium|High]",
			Category:    "Events",
			Destination: &q.risk,
		},
		&cli.StringFlag{
			Name:        "category",
			Usage:       "Category filter, e.g. Disruption",
			Category:    "Events",
			Destination: &q.category,
		},
		&cli.StringFlag{
			Name:        "commodity",
			Usage:       "Commodity filter, e.g. Steel",
			Category:    "Events",
			Destination: &q.commodity,
		},
	}
}

// Acquire validates the query, acquires events and narrows them by the filter
func (q *eventQuery) Acquire(ctx context.Context, acq *usecase.AcquisitionUseCase) (*model.Acquisition, error) {
	mode, err := types.ParseDataMode(q.mode)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid mode", goerr.V("mode", q.mode))
	}
	filter, err := model.ParseEventFilter(q.region, q.risk, q.category, q.commodity)
	if err != nil {
		return nil, err
	}

	result := acq.Events(ctx, mode)
	total := len(result.Events)
	result.Events = filter.Apply(result.Events)

	for _, n := range result.Notices {
		logNotice(ctx, n)
	}
	logging.From(ctx).Debug("Events acquired",
		slog.String("source", result.Source.String()),
		slog.Int("total", total),
		slog.Int("filtered", len(result.Events)),
	)
	return result, nil
}

func logNotice(ctx context.Context, n model.Notice) {
	logger := logging.From(ctx)
	if n.Level == model.NoticeWarning {
		logger.Warn(n.Message, "source", n.Source)
		return
	}
	logger.Info(n.Message, "source", n.Source)
}
