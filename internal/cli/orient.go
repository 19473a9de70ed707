package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/foliar/orient"
	"github.com/katalvlaran/foliar/search"
	"github.com/katalvlaran/foliar/triangulation"
)

// isosigs is a search.TriangulationSource over signatures given up front.
type isosigs []string

func (s isosigs) Isosigs(context.Context, int, int) ([]string, error) { return s, nil }

type orientOptions struct {
	mode string
}

// Orient modes.
const (
	modeList       = "list"
	modeFirst      = "first"
	modeEulerZero  = "euler-zero"
	modeDegeneracy = "degeneracy"
	modeQuick      = "no-acyclic"
)

// NewOrientCommand creates the orient command.
func NewOrientCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &orientOptions{}

	cmd := &cobra.Command{
		Use:   "orient <isosig>...",
		Short: "Enumerate acyclic edge orientations and the foliations they give",
		Long: `Decode triangulations from their isomorphism signatures and enumerate the
acyclic orientations of their edges.

Modes:
  list        every orientation of every triangulation (default)
  first       the first orientation giving a taut foliation
  euler-zero  whether some foliation has vanishing Euler class
  degeneracy  the degeneracy slopes of the once-cusped triangulations
  no-acyclic  the first closed triangulation with no acyclic orientation`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrient(cmd, rootOpts, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", modeList, "list|first|euler-zero|degeneracy|no-acyclic")

	return cmd
}

type orientation struct {
	Signs      []int  `json:"signs"`
	Foliation  bool   `json:"foliation"`
	EulerZero  *bool  `json:"euler_zero,omitempty"`
	Degeneracy string `json:"degeneracy_slope,omitempty"`
}

type orientReport struct {
	Isosig       string        `json:"isosig"`
	Kind         string        `json:"kind"`
	Orientations []orientation `json:"orientations"`
}

func runOrient(cmd *cobra.Command, rootOpts *RootOptions, opts *orientOptions, sigs []string) error {
	ctx := cmd.Context()
	cfg := rootOpts.Search()
	w := cmd.OutOrStdout()

	switch opts.mode {
	case modeList:
		reports := make([]orientReport, 0, len(sigs))
		for _, sig := range sigs {
			r, err := listOrientations(sig, cfg)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}

		return rootOpts.emit(w, reports, func(w io.Writer) error { return writeReports(w, reports) })
	case modeFirst:
		eo, err := search.FirstFoliation(ctx, isosigs(sigs), cfg)
		if err != nil {
			return err
		}
		var signs []int
		if eo != nil {
			signs = eo.Signs()
		}

		return rootOpts.emit(w, map[string]any{"signs": signs}, func(w io.Writer) error {
			if eo == nil {
				_, err := fmt.Fprintln(w, "no foliation found")

				return err
			}
			_, err := fmt.Fprintln(w, signs)

			return err
		})
	case modeEulerZero:
		ok, err := search.HasTautFoliationWithEulerZero(ctx, isosigs(sigs), cfg)
		if err != nil {
			return err
		}

		return rootOpts.emit(w, map[string]bool{"euler_zero": ok}, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, ok)

			return err
		})
	case modeDegeneracy:
		slopes, err := search.DegeneracySlopes(ctx, isosigs(sigs), orient.Intrinsic{}, cfg)
		if err != nil {
			return err
		}
		out := make([][2]int64, len(slopes))
		for i, s := range slopes {
			out[i] = s.Vec()
		}

		return rootOpts.emit(w, map[string]any{"slopes": out}, func(w io.Writer) error {
			for _, s := range slopes {
				if _, err := fmt.Fprintln(w, s); err != nil {
					return err
				}
			}

			return nil
		})
	case modeQuick:
		sig, ok, err := search.QuickNonOrderable(ctx, isosigs(sigs), len(sigs), cfg)
		if err != nil {
			return err
		}

		return rootOpts.emit(w, map[string]any{"non_orderable": ok, "isosig": sig}, func(w io.Writer) error {
			if !ok {
				_, err := fmt.Fprintln(w, "every triangulation has an acyclic orientation")

				return err
			}
			_, err := fmt.Fprintf(w, "not left-orderable: %s has no acyclic orientation\n", sig)

			return err
		})
	}

	return errors.Newf("unknown mode %q", opts.mode)
}

func listOrientations(sig string, cfg search.Config) (orientReport, error) {
	c, err := triangulation.Decode(sig)
	if err != nil {
		return orientReport{}, err
	}
	opts := []orient.Option{orient.WithBackend(cfg.Backend), orient.WithLogger(cfg.Log), orient.WithMetrics(cfg.Metrics)}
	r := orientReport{Isosig: sig, Kind: "closed", Orientations: []orientation{}}

	if c.NumVertices() == 1 {
		if g, err := c.LinkGenus(0); err == nil && g == 1 {
			r.Kind = "ideal"
			eos, err := orient.Ideal(c, opts...)
			if err != nil {
				return r, err
			}
			for _, eo := range eos {
				o := orientation{Signs: eo.Signs()}
				s, err := eo.DegeneracySlope()
				switch {
				case err == nil:
					o.Foliation, o.Degeneracy = true, s.String()
				case !errors.Is(err, orient.ErrNoFoliation):
					return r, err
				}
				r.Orientations = append(r.Orientations, o)
			}

			return r, nil
		}
	}

	eos, err := orient.Closed(c, opts...)
	if err != nil {
		return r, err
	}
	for _, eo := range eos {
		o := orientation{Signs: eo.Signs()}
		if o.Foliation, err = eo.GivesFoliation(); err != nil {
			return r, err
		}
		if o.Foliation {
			zero, err := eo.EulerClassVanishes()
			if err != nil {
				return r, err
			}
			o.EulerZero = &zero
		}
		r.Orientations = append(r.Orientations, o)
	}

	return r, nil
}

func writeReports(w io.Writer, reports []orientReport) error {
	for _, r := range reports {
		foliar := 0
		for _, o := range r.Orientations {
			if o.Foliation {
				foliar++
			}
		}
		if _, err := fmt.Fprintf(w, "%s (%s): %d orientations, %d foliar\n",
			r.Isosig, r.Kind, len(r.Orientations), foliar); err != nil {
			return err
		}
		for _, o := range r.Orientations {
			line := fmt.Sprintf("  %v foliation=%t", o.Signs, o.Foliation)
			if o.EulerZero != nil {
				line += fmt.Sprintf(" euler_zero=%t", *o.EulerZero)
			}
			if o.Degeneracy != "" {
				line += " degeneracy=" + o.Degeneracy
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	return nil
}
