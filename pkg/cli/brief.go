package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdBrief() *cli.Command {
	var appCfg appConfig
	var query eventQuery

	flags := query.Flags()
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:  "brief",
		Usage: "Generate an executive brief over the selected events",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}

			acq, err := query.Acquire(ctx, uc.Acquisition)
			if err != nil {
				return err
			}

			writeBrief(os.Stdout, uc.Enrichment.ExecutiveBrief(ctx, acq.Events))
			return nil
		},
	}
}

func cmdAsk() *cli.Command {
	var appCfg appConfig
	var query eventQuery

	flags := query.Flags()
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask a question about the selected events",
		ArgsUsage: "<question>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if question == "" {
				return goerr.New("question is required")
			}

			uc, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}

			acq, err := query.Acquire(ctx, uc.Acquisition)
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, uc.Enrichment.Ask(ctx, acq.Events, question))
			return nil
		},
	}
}
