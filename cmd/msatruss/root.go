package main

import (
	"fmt"

	"github.com/notargets/MSATruss/partitions"
	"github.com/notargets/MSATruss/readers"
	"github.com/notargets/MSATruss/truss"
	"github.com/spf13/cobra"
)

type options struct {
	maxCond  float64
	workers  int
	partSize int
	strategy string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "msatruss",
		Short: "Matrix structural analysis of pin-jointed 2D trusses",
		Long: `Solve 2D truss models with the direct stiffness method.

A model is a JSON file with node coordinates, element connectivity,
[E, A] per element, and displacement and force vectors of length 2N.
Each DOF must have exactly one of displacement or force known; the
other is written as null or "unk".

Example model file:
{
  "nodes": [[0, 0], [4000, 0], [4000, 3000], [8000, 3000]],
  "elements": [[0, 1], [0, 2], [1, 2], [1, 3], [2, 3]],
  "properties": [[200000, 100], [200000, 200], [200000, 100], [200000, 200], [200000, 100]],
  "displacements": [-4, 0, "unk", "unk", "unk", "unk", 0, 0],
  "forces": ["unk", "unk", 0, 0, 0, -9000, "unk", "unk"]
}`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.Float64Var(&opts.maxCond, "max-cond", truss.DefaultMaxCondition, "largest accepted condition estimate of the reduced stiffness")
	pf.IntVar(&opts.workers, "workers", 1, "concurrent element stiffness workers")
	pf.IntVar(&opts.partSize, "partition-size", 0, "elements per worker; overrides --workers when > 0")
	pf.StringVar(&opts.strategy, "strategy", "block", "element partition strategy: block or roundrobin")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "print solver progress")

	root.AddCommand(
		newSolveCmd(opts),
		newStiffnessCmd(opts),
		newCheckCmd(opts),
		newInitCmd(),
	)
	return root
}

// loadModel reads a model file and builds a truss model from the command options
func loadModel(cmd *cobra.Command, opts *options, path string) (*truss.Model, *readers.ModelFile, error) {
	mf, err := readers.ReadModelFile(path)
	if err != nil {
		return nil, nil, err
	}
	strategy, err := partitions.ParseStrategy(opts.strategy)
	if err != nil {
		return nil, nil, err
	}
	cfg := truss.DefaultConfig()
	cfg.MaxCondition = opts.maxCond
	cfg.Workers = opts.workers
	cfg.PartitionSize = opts.partSize
	cfg.Strategy = strategy
	cfg.Verbose = opts.verbose
	cfg.Output = cmd.ErrOrStderr()

	m, err := truss.NewModel(mf.Input(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, mf, nil
}
