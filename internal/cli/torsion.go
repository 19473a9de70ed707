package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/foliar/abelian"
	"github.com/katalvlaran/foliar/slope"
	"github.com/katalvlaran/foliar/torsion"
)

type torsionOptions struct {
	gens      int
	relators  []string
	meridian  string
	longitude string
}

// NewTorsionCommand creates the torsion command.
func NewTorsionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &torsionOptions{}

	cmd := &cobra.Command{
		Use:   "torsion",
		Short: "Turaev torsion of a rational homology solid torus",
		Long: `Compute the Turaev torsion of a presentation of the fundamental group of a
rational homology solid torus, given with words for two peripheral curves,
and the non-L-space intervals it leaves.

Generators are a, b, c, ...; their inverses are A, B, C, ...`,
		Example: `  foliar torsion --gens 2 --relator aaBBB --meridian aB --longitude aabAbAbAbAbAbA`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTorsion(cmd, rootOpts, opts)
		},
	}
	cmd.Flags().IntVar(&opts.gens, "gens", 1, "number of generators")
	cmd.Flags().StringArrayVarP(&opts.relators, "relator", "r", nil, "relator word (repeatable)")
	cmd.Flags().StringVar(&opts.meridian, "meridian", "", "word of the first peripheral curve")
	cmd.Flags().StringVar(&opts.longitude, "longitude", "", "word of the second peripheral curve")

	return cmd
}

type torsionReport struct {
	Tau           string     `json:"tau"`
	FloerSimple   bool       `json:"floer_simple"`
	ThurstonBound int64      `json:"thurston_norm_lower_bound"`
	Meridian      [2]int64   `json:"meridian"`
	Longitude     [2]int64   `json:"longitude"`
	DTauPlus      [][2]int64 `json:"dtau_plus"`
	Iota          string     `json:"iota_inverse"`
	Cones         []string   `json:"possible_non_l_space_cones"`
}

func runTorsion(cmd *cobra.Command, rootOpts *RootOptions, opts *torsionOptions) error {
	in := torsion.Input{
		Presentation: abelian.Presentation{Gens: opts.gens, Relators: opts.relators},
		Peripheral:   [2]string{opts.meridian, opts.longitude},
	}
	tr, err := torsion.New(in, torsion.WithLogger(rootOpts.Log), torsion.WithMetrics(rootOpts.mtr))
	if err != nil {
		return err
	}
	d, err := torsion.FromTorsion(tr)
	if err != nil {
		return err
	}
	cones, err := d.PossibleNonLSpaceCones(slope.New(1, 0))
	if err != nil {
		return err
	}
	r := torsionReport{
		Tau:           tr.Tau().String(),
		FloerSimple:   tr.CouldBeFloerSimple(),
		ThurstonBound: tr.LowerBoundOnThurston(),
		Meridian:      tr.Meridian(),
		Longitude:     tr.Longitude(),
		DTauPlus:      tr.DTauPlusValues(),
		Iota:          d.String(),
		Cones:         setStrings(cones),
	}

	return rootOpts.emit(cmd.OutOrStdout(), r, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "tau: %s\nfloer simple: %t\nthurston norm >= %d\niota: %s\ncones: %s\n",
			r.Tau, r.FloerSimple, r.ThurstonBound, r.Iota, strings.Join(r.Cones, " or "))

		return err
	})
}

func setStrings(sets []slope.Set) []string {
	out := make([]string, len(sets))
	for i, s := range sets {
		out[i] = s.String()
	}

	return out
}

type coneOptions struct {
	at       string
	contains []string
}

// NewConeCommand creates the cone command.
func NewConeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &coneOptions{}

	cmd := &cobra.Command{
		Use:   "cone <iota-inverse> [l-space-slope...]",
		Short: "Non-L-space slope interval from iota-inverse data",
		Long: `Read an IotaInverseDtau(...) value and either pin down the non-L-space cone
from known L-space filling slopes, or, with none given, list the cones still
possible given that the --at slope is an L-space filling.

Slopes are written a,b or (a, b).`,
		Example: `  foliar cone 'IotaInverseDtau(L=1,m=(-1,0),l=(-18,-1),values=[(1,0),(2,0),(3,0),(4,0),(6,0),(9,0)])' 1,0 0,1 1,-1`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCone(cmd, rootOpts, opts, args[0], args[1:])
		},
	}
	cmd.Flags().StringVar(&opts.at, "at", "1,0", "known L-space slope when none is given as argument")
	cmd.Flags().StringArrayVar(&opts.contains, "contains", nil, "report whether the cone holds this slope (repeatable)")

	return cmd
}

func parseSlopes(args []string) ([]slope.Slope, error) {
	out := make([]slope.Slope, len(args))
	for i, a := range args {
		s, err := slope.ParseSlope(a)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}

	return out, nil
}

func runCone(cmd *cobra.Command, rootOpts *RootOptions, opts *coneOptions, data string, args []string) error {
	d, err := torsion.ParseIotaInverse(data)
	if err != nil {
		return err
	}
	lspace, err := parseSlopes(args)
	if err != nil {
		return err
	}
	probes, err := parseSlopes(opts.contains)
	if err != nil {
		return err
	}

	var cones []slope.Set
	if len(lspace) == 0 {
		at, err := slope.ParseSlope(opts.at)
		if err != nil {
			return err
		}
		if cones, err = d.PossibleNonLSpaceCones(at); err != nil {
			return err
		}
	} else {
		c, err := d.NonLSpaceCone(lspace)
		if err != nil {
			return err
		}
		cones = []slope.Set{c}
	}

	type probe struct {
		Slope    string `json:"slope"`
		Contains []bool `json:"contains"`
	}
	probed := make([]probe, len(probes))
	for i, s := range probes {
		probed[i] = probe{Slope: s.String()}
		for _, c := range cones {
			probed[i].Contains = append(probed[i].Contains, c.Contains(s))
		}
	}
	out := map[string]any{"cones": setStrings(cones), "probes": probed}

	return rootOpts.emit(cmd.OutOrStdout(), out, func(w io.Writer) error {
		for _, c := range cones {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return err
			}
		}
		for _, p := range probed {
			if _, err := fmt.Fprintf(w, "%s in cone: %v\n", p.Slope, p.Contains); err != nil {
				return err
			}
		}

		return nil
	})
}
