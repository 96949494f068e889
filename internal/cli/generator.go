package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rmera/gosdg/chemjson"
	"github.com/rmera/gosdg/sdg"
)

//generatorFlags are the flags shared by the commands that build a Generator.
type generatorFlags struct {
	config     string
	templates  []string
	bondLength float64
	noLibrary  bool
}

func (f *generatorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML file with layout heuristics")
	cmd.Flags().StringSliceVarP(&f.templates, "templates", "t", nil, "extra template definition files")
	cmd.Flags().Float64Var(&f.bondLength, "bond-length", 0, "target bond length (default 1.5)")
	cmd.Flags().BoolVar(&f.noLibrary, "no-templates", false, "do not use ring templates")
}

//options builds generator options from the flags and, if not nil, the options
//sent in the input stream. Flags win over the stream.
func (f *generatorFlags) options(ctx context.Context, jopts *chemjson.Options) (*sdg.Options, error) {
	opts := sdg.DefaultOptions()
	opts.Logger(loggerFromContext(ctx).WithPrefix("sdg"))
	if f.config != "" {
		h, err := sdg.LoadHeuristics(f.config)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", f.config, err)
		}
		opts.Heuristics(h)
	}
	if jopts != nil {
		opts.BondLength(jopts.BondLength)
		if len(jopts.FirstBond) == 2 {
			opts.FirstBondVector(r2.Vec{X: jopts.FirstBond[0], Y: jopts.FirstBond[1]})
		}
		opts.AlignMappedReaction(jopts.AlignMapped)
	}
	if f.bondLength < 0 {
		return nil, fmt.Errorf("invalid bond length %g", f.bondLength)
	}
	opts.BondLength(f.bondLength)
	return opts, nil
}

//generator returns a Generator with the given options and the template
//library the flags ask for.
func (f *generatorFlags) generator(opts *sdg.Options) (*sdg.Generator, error) {
	if f.noLibrary {
		return sdg.NewGenerator(opts, nil), nil
	}
	g, err := sdg.New(opts)
	if err != nil {
		return nil, fmt.Errorf("load bundled templates: %w", err)
	}
	for _, name := range f.templates {
		if err := loadTemplates(g, name); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func loadTemplates(g *sdg.Generator, name string) error {
	fin, err := os.Open(name)
	if err != nil {
		return err
	}
	defer fin.Close()
	if err := g.Library().Load(fin); err != nil {
		return fmt.Errorf("load templates %s: %w", name, err)
	}
	return nil
}
