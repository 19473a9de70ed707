package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/foliar/disorder"
	"github.com/katalvlaran/foliar/group"
	"github.com/katalvlaran/foliar/search"
)

type disorderOptions struct {
	file  string
	proof bool
}

// NewDisorderCommand creates the disorder command.
func NewDisorderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &disorderOptions{}

	cmd := &cobra.Command{
		Use:   "disorder [family [args...]]",
		Short: "Certify that groups are not left-orderable",
		Long: `Grow a Cayley ball from disorder.ball_radius to disorder.max_radius until
every choice of signs contradicts a left-order.

Name one group by family (cyclic N, quaternion, sanov), or pass --file with a
YAML list of groups, which are run disorder.workers at a time.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisorder(cmd, rootOpts, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML list of groups")
	cmd.Flags().BoolVar(&opts.proof, "proof", false, "emit checkable proofs (implies disorder.track)")

	return cmd
}

func parseArgs(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %q", a)
		}
		out[i] = n
	}

	return out, nil
}

func runDisorder(cmd *cobra.Command, rootOpts *RootOptions, opts *disorderOptions, args []string) error {
	var groups []search.NamedGroup
	switch {
	case opts.file != "" && len(args) > 0:
		return errors.New("name a group or pass --file, not both")
	case opts.file != "":
		f, err := os.Open(opts.file)
		if err != nil {
			return errors.Wrap(err, "open groups file")
		}
		defer f.Close()
		if groups, err = loadGroups(f); err != nil {
			return err
		}
	case len(args) > 0:
		n, err := parseArgs(args[1:])
		if err != nil {
			return err
		}
		ng, err := namedGroup(args[0], n)
		if err != nil {
			return err
		}
		groups = []search.NamedGroup{ng}
	default:
		return errors.New("name a group or pass --file")
	}

	cfg := rootOpts.Search()
	cfg.Track = cfg.Track || opts.proof
	results, err := search.CertifyNonOrderableBatch(cmd.Context(), groups, cfg)
	if err != nil {
		return err
	}

	return rootOpts.emit(cmd.OutOrStdout(), results, func(w io.Writer) error {
		for _, r := range results {
			if err := writeResult(w, r, opts.proof); err != nil {
				return err
			}
		}

		return nil
	})
}

func writeResult(w io.Writer, r search.BatchResult, withProof bool) error {
	var err error
	switch {
	case r.NonOrderable():
		_, err = fmt.Fprintf(w, "%s: not left-orderable (radius %d)\n", r.Name, r.Radius)
	case r.Exhausted:
		_, err = fmt.Fprintf(w, "%s: undecided, raise disorder.max_radius\n", r.Name)
	}
	if err != nil || !withProof || r.Proof == nil {
		return err
	}
	data, err := r.Proof.Marshal()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)

	return err
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <proof.json>",
		Short: "Check a non-orderability proof",
		Long: `Rebuild the group from the proof's name and group_args and check the proof
against it. Pass - to read the proof from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, rootOpts, args[0])
		},
	}
}

func runVerify(cmd *cobra.Command, rootOpts *RootOptions, path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return errors.Wrap(err, "read proof")
	}
	p, err := disorder.ParseProof(data)
	if err != nil {
		return err
	}
	ng, err := namedGroup(p.Name, p.GroupArgs)
	if err != nil {
		return err
	}
	g, err := group.New(ng.Gens, group.WithBits(rootOpts.Config.Disorder.MinBitsAccuracy))
	if err != nil {
		return err
	}
	if err := disorder.VerifyProof(g, p); err != nil {
		return err
	}
	rootOpts.Log.Debug("proof verified")

	return rootOpts.emit(cmd.OutOrStdout(), map[string]any{"name": p.Name, "valid": true}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s: proof is valid (%d leaves)\n", p.Name, len(p.Steps))

		return err
	})
}
