package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	var gf generatorFlags
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the ring templates available to the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := gf.options(cmd.Context(), nil)
			if err != nil {
				return err
			}
			g, err := gf.generator(opts)
			if err != nil {
				return err
			}
			if g.Library() == nil {
				return nil
			}
			out := cmd.OutOrStdout()
			for _, t := range g.Library().Templates() {
				fmt.Fprintf(out, "%s\t%d atoms\n", t.Name, t.Mol.Len())
			}
			loggerFromContext(cmd.Context()).Debug("listed templates", "count", g.Library().Len())
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&gf.templates, "templates", "t", nil, "extra template definition files")
	cmd.Flags().BoolVar(&gf.noLibrary, "no-templates", false, "list nothing, as the layout would use no templates")
	return cmd
}
