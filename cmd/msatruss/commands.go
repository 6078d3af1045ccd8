package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/notargets/MSATruss/dof"
	"github.com/notargets/MSATruss/readers"
	"github.com/notargets/MSATruss/truss"
	"github.com/notargets/MSATruss/utils"
	"github.com/spf13/cobra"
)

// solveOutput is the JSON form of a solved model
type solveOutput struct {
	Name          string             `json:"name,omitempty"`
	Unknowns      []float64          `json:"unknowns"`
	Displacements map[string]float64 `json:"displacements"`
	Reactions     map[string]float64 `json:"reactions"`
	AxialForces   []float64          `json:"axial_forces"`
	Residual      float64            `json:"residual"`
	SumFx         float64            `json:"sum_fx"`
	SumFy         float64            `json:"sum_fy"`
}

func newSolveCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "solve <model.json>",
		Short: "Solve for unknown displacements and reactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, mf, err := loadModel(cmd, opts, args[0])
			if err != nil {
				return err
			}
			res, err := m.Result()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !asJSON {
				if mf.Name != "" {
					fmt.Fprintf(out, "%s\n", mf.Name)
				}
				fmt.Fprint(out, m.String())
				return nil
			}

			so := solveOutput{
				Name:          mf.Name,
				Unknowns:      res.Unknowns,
				Displacements: make(map[string]float64),
				Reactions:     make(map[string]float64),
				AxialForces:   res.AxialForces,
				Residual:      res.Residual,
				SumFx:         res.SumFx,
				SumFy:         res.SumFy,
			}
			for i, d := range res.UnknownDisplacementDOFs {
				so.Displacements[truss.DOFLabel("u", d)] = res.Displacements()[i]
			}
			for i, d := range res.ReactionDOFs {
				so.Reactions[truss.DOFLabel("f", d)] = res.Reactions()[i]
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(so)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write results as JSON")
	return cmd
}

func newStiffnessCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stiffness <model.json>",
		Short: "Print the assembled global stiffness matrix",
		Long:  "Print the assembled global stiffness matrix. No solve is run, so this works for unstable models too.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadModel(cmd, opts, args[0])
			if err != nil {
				return err
			}
			K, err := m.Stiffness()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), utils.FormatMatrix("K", K))
			return nil
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	var tol float64
	cmd := &cobra.Command{
		Use:   "check <model.json>",
		Short: "Solve and verify the residual and global equilibrium",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := loadModel(cmd, opts, args[0])
			if err != nil {
				return err
			}
			res, err := m.Result()
			if err != nil {
				return err
			}
			fx, fy, err := m.Check()
			if err != nil {
				return err
			}
			K, err := m.Stiffness()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "symmetry  %.3e\n", utils.MaxAsymmetry(K))
			fmt.Fprintf(out, "residual  %.3e\n", res.Residual)
			fmt.Fprintf(out, "sum Fx    %.3e\n", fx)
			fmt.Fprintf(out, "sum Fy    %.3e\n", fy)

			scale := 1.0
			for _, v := range res.Reactions() {
				if a := math.Abs(v); a > scale {
					scale = a
				}
			}
			if res.Residual > tol*scale || math.Abs(fx) > tol*scale || math.Abs(fy) > tol*scale {
				return fmt.Errorf("check failed: residual or force balance exceeds %g relative", tol)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	cmd.Flags().Float64Var(&tol, "tol", 1e-6, "relative tolerance for residual and equilibrium")
	return cmd
}

// templateModel is the four-node reference truss written by init
func templateModel() *readers.ModelFile {
	unk, k := dof.Unknown(), dof.Known
	return &readers.ModelFile{
		Name:          "Four-node truss",
		Nodes:         [][2]float64{{0, 0}, {4000, 0}, {4000, 3000}, {8000, 3000}},
		Elements:      [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}},
		Properties:    [][2]float64{{200000, 100}, {200000, 200}, {200000, 100}, {200000, 200}, {200000, 100}},
		Displacements: dof.Vector{k(-4), k(0), unk, unk, unk, unk, k(0), k(0)},
		Forces:        dof.Vector{unk, unk, k(0), k(0), k(0), k(-9000), unk, unk},
	}
}

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [model.json]",
		Short: "Write a template model file, or print it when no path is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mf := templateModel()
			if len(args) == 0 {
				return mf.Write(cmd.OutOrStdout())
			}
			flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
			if force {
				flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			}
			f, err := os.OpenFile(args[0], flags, 0o644)
			if err != nil {
				return err
			}
			if err = mf.Write(f); err != nil {
				f.Close()
				return err
			}
			if err = f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
