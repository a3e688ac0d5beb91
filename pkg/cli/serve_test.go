package cli

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

func TestServe_WarmerIsOptIn(t *testing.T) {
	var found bool
	for _, f := range cmdServe().Flags {
		df, ok := f.(*cli.DurationFlag)
		if !ok || df.Name != "warm-interval" {
			continue
		}
		found = true
		gt.Value(t, df.Value).Equal(time.Duration(0))
	}
	gt.True(t, found)
}
