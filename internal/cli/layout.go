package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	chem "github.com/rmera/gosdg"
	"github.com/rmera/gosdg/chemjson"
	"github.com/rmera/gosdg/chemplot"
	"github.com/rmera/gosdg/sdg"
)

func newLayoutCmd() *cobra.Command {
	var (
		gf       generatorFlags
		output   string
		plotDir  string
		withOpts bool
		info     bool
		jobs     int
	)
	cmd := &cobra.Command{
		Use:   "layout [molecules.jsonl]",
		Short: "Compute 2D coordinates for a stream of molecules",
		Long: `Compute 2D coordinates for a stream of molecules.

The input (a file, or stdin if none is given or the name is "-") holds molecules
in the chemjson line format. Every molecule is written back, in the same order,
with 2D coordinates and substructure group brackets. Molecules that cannot be
laid out are written without coordinates, and make the command fail once all
the others are done.

With --options, the first line of the input is a chemjson options record, which
can also name fixed atoms and bonds, by index, for every molecule.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := "-"
			if len(args) > 0 {
				in = args[0]
			}
			return runLayout(cmd.Context(), cmd, in, output, plotDir, &gf, withOpts, info, jobs)
		},
	}
	gf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&plotDir, "plot", "", "also write a PNG depiction of each molecule to this directory")
	cmd.Flags().BoolVar(&withOpts, "options", false, "read a chemjson options record before the molecules")
	cmd.Flags().BoolVar(&info, "info", false, "write a chemjson info record after the molecules")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of molecules laid out concurrently")
	return cmd
}

//openInput returns the named file, or the command's input for "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" || name == "" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(name)
}

//createOutput returns the named file, or the command's output for "".
func createOutput(cmd *cobra.Command, name string) (io.WriteCloser, error) {
	if name == "" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func runLayout(ctx context.Context, cmd *cobra.Command, input, output, plotDir string, gf *generatorFlags, withOpts, sendInfo bool, jobs int) error {
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
	mols, err := readMolecules(ctx, stream)
	if err != nil {
		return err
	}
	logger.Debug("read input", "molecules", len(mols), "file", input)
	opts, err := gf.options(ctx, jopts)
	if err != nil {
		return err
	}
	g, err := gf.generator(opts)
	if err != nil {
		return err
	}
	if plotDir != "" {
		if err := os.MkdirAll(plotDir, 0o755); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	failed := make([]bool, len(mols))
	eg, ectx := errgroup.WithContext(ctx)
	if jobs < 1 {
		jobs = 1
	}
	eg.SetLimit(jobs)
	for i, mol := range mols {
		i, mol := i, mol
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			if err := layoutOne(g, mol, jopts); err != nil {
				logger.Error("layout failed", "molecule", mol.Name, "index", i, "err", err)
				failed[i] = true
				for _, a := range mol.Atoms {
					a.ClearPos()
				}
				return nil
			}
			if plotDir != "" {
				name := filepath.Join(plotDir, fmt.Sprintf("%04d.png", i))
				if err := chemplot.Depict(mol, mol.Name, name); err != nil {
					logger.Warn("could not draw molecule", "molecule", mol.Name, "err", err)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Laid out %d molecules", len(mols)))

	fout, err := createOutput(cmd, output)
	if err != nil {
		return err
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	report := &chemjson.Info{Molecules: len(mols)}
	for i, mol := range mols {
		if jerr := chemjson.SendMolecule(mol, w); jerr != nil {
			return jerr
		}
		report.AtomsPerMolecule = append(report.AtomsPerMolecule, mol.Len())
		if failed[i] {
			report.Failed = append(report.Failed, mol.Name)
		}
	}
	if sendInfo {
		if jerr := report.Send(w); jerr != nil {
			return jerr
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d molecules could not be laid out", len(report.Failed), len(mols))
	}
	return nil
}

//readMolecules decodes molecules until the stream ends.
func readMolecules(ctx context.Context, stream *bufio.Reader) ([]*chem.Molecule, error) {
	var mols []*chem.Molecule
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mol, jerr := chemjson.DecodeMolecule(stream)
		if jerr != nil {
			return nil, jerr
		}
		if mol == nil {
			return mols, nil
		}
		mols = append(mols, mol)
	}
}

//layoutOne lays out mol, with the fixed atoms and bonds named in jopts, if any.
func layoutOne(g *sdg.Generator, mol *chem.Molecule, jopts *chemjson.Options) error {
	if jopts == nil || len(jopts.FixedAtoms)+len(jopts.FixedBonds) == 0 {
		return g.GenerateCoordinates(mol)
	}
	atoms, bonds, err := jopts.FixedIn(mol)
	if err != nil {
		return err
	}
	opts := g.Options().Copy()
	opts.Fixed(sdg.NewFixedSet(atoms, bonds))
	return sdg.NewGenerator(opts, g.Library()).GenerateCoordinates(mol)
}
