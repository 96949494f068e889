package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmera/gosdg/chemjson"
	"github.com/rmera/gosdg/chemplot"
)

func newReactionCmd() *cobra.Command {
	var (
		gf       generatorFlags
		output   string
		plotFile string
		align    bool
		withOpts bool
	)
	cmd := &cobra.Command{
		Use:   "reaction [reaction.jsonl]",
		Short: "Compute 2D coordinates for a reaction",
		Long: `Compute 2D coordinates for a reaction.

The input holds one reaction in the chemjson line format: a reaction header
followed by its reactants, agents and products. The reaction is written back
laid out from left to right, with the agents above the arrow.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := "-"
			if len(args) > 0 {
				in = args[0]
			}
			return runReaction(cmd.Context(), cmd, in, output, plotFile, &gf, align, withOpts)
		},
	}
	gf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&plotFile, "plot", "", "also draw the reaction to this file (png, svg or pdf)")
	cmd.Flags().BoolVarP(&align, "align", "a", false, "align reactants to products through the atom mapping")
	cmd.Flags().BoolVar(&withOpts, "options", false, "read a chemjson options record before the reaction")
	return cmd
}

func runReaction(ctx context.Context, cmd *cobra.Command, input, output, plotFile string, gf *generatorFlags, align, withOpts bool) error {
	logger := loggerFromContext(ctx)
	fin, err := openInput(cmd, input)
	if err != nil {
		return err
	}
	defer fin.Close()
	stream := bufio.NewReader(fin)
	var jopts *chemjson.Options
	if withOpts {
		var jerr *chemjson.Error
		if jopts, jerr = chemjson.DecodeOptions(stream); jerr != nil {
			return jerr
		}
	}
	rxn, jerr := chemjson.DecodeReaction(stream)
	if jerr != nil {
		return jerr
	}
	opts, err := gf.options(ctx, jopts)
	if err != nil {
		return err
	}
	if align {
		opts.AlignMappedReaction(true)
	}
	g, err := gf.generator(opts)
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	if err := g.GenerateReactionCoordinates(rxn); err != nil {
		return fmt.Errorf("layout reaction: %w", err)
	}
	prog.done(fmt.Sprintf("Laid out a reaction with %d molecules", len(rxn.Molecules())))
	if plotFile != "" {
		if err := chemplot.DepictReaction(rxn, "", plotFile); err != nil {
			return fmt.Errorf("draw reaction: %w", err)
		}
	}
	fout, err := createOutput(cmd, output)
	if err != nil {
		return err
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	if jerr := chemjson.SendReaction(rxn, w); jerr != nil {
		return jerr
	}
	return w.Flush()
}
