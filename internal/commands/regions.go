package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soulfoods/morsels/internal/aggregate"
	"github.com/soulfoods/morsels/internal/dataset"
)

func newRegionsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List regions and their total sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ds, err := dataset.Load(cfg.Output)
			if err != nil {
				return err
			}
			return writeRegions(cmd.OutOrStdout(), ds)
		},
	}
}

func writeRegions(out io.Writer, ds *dataset.Dataset) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tDAYS\tTOTAL")

	for _, sel := range aggregate.Choices(ds) {
		points := aggregate.Aggregate(ds, sel)
		fmt.Fprintf(tw, "%s\t%d\t%s\n", sel, len(points), aggregate.Total(points).StringFixed(2))
	}
	return tw.Flush()
}
