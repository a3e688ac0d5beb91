package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdFetch() *cli.Command {
	var appCfg appConfig
	var query eventQuery
	var format string
	var limit int
	var analyze bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format [table|json|csv]",
			Value:       formatTable,
			Destination: &format,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of events to print (0 prints all)",
			Destination: &limit,
		},
		&cli.BoolFlag{
			Name:        "analyze",
			Usage:       "Run AI analysis for each printed event (table output only)",
			Destination: &analyze,
		},
	}
	flags = append(flags, query.Flags()...)
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Acquire events once and print them",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if limit < 0 {
				return goerr.New("limit must not be negative", goerr.V("limit", limit))
			}

			uc, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}

			acq, err := query.Acquire(ctx, uc.Acquisition)
			if err != nil {
				return err
			}
			if limit > 0 && len(acq.Events) > limit {
				acq.Events = acq.Events[:limit]
			}

			if analyze {
				for i, ev := range acq.Events {
					acq.Events[i] = uc.Enrichment.AnalyzeEvent(ctx, ev)
				}
			}

			w := os.Stdout
			if err := writeEvents(w, format, acq); err != nil {
				return err
			}
			if analyze && (format == formatTable || format == "") {
				for _, ev := range acq.Events {
					headerColor.Fprintf(w, "\n%s\n", ev.Headline)
					writeAnalysis(w, ev)
				}
			}
			return nil
		},
	}
}
