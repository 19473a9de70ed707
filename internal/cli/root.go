// Package cli implements the foliar command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/foliar/config"
	"github.com/katalvlaran/foliar/logging"
	"github.com/katalvlaran/foliar/metrics"
	"github.com/katalvlaran/foliar/search"
)

// ValidFormats are the accepted values of --format.
var ValidFormats = []string{"text", "json"}

// RootOptions holds the global flags and what PersistentPreRunE builds from
// them.
type RootOptions struct {
	ConfigPath string
	Format     string
	Stats      bool

	Config *config.Config
	Log    *zap.Logger
	reg    *prometheus.Registry
	mtr    *metrics.Metrics
}

// Search returns the search bounds with logger and metrics attached.
func (o *RootOptions) Search() search.Config {
	c := o.Config.Search()
	c.Log, c.Metrics = o.Log, o.mtr

	return c
}

// NewRootCommand creates the foliar command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "foliar",
		Short: "Taut foliations, left-orders and L-spaces of 3-manifolds",
		Long: `foliar looks for co-orientable taut foliations through edge orientations
of triangulations, certifies that groups are not left-orderable, and computes
Turaev torsions and non-L-space slope intervals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Stats {
				return nil
			}

			return opts.writeStats(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVar(&opts.Stats, "stats", false, "print counters to stderr when done")

	cmd.AddCommand(NewOrientCommand(opts))
	cmd.AddCommand(NewTorsionCommand(opts))
	cmd.AddCommand(NewConeCommand(opts))
	cmd.AddCommand(NewDisorderCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

func (o *RootOptions) init() error {
	if !isValidFormat(o.Format) {
		return errors.Newf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}
	c, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	o.Config = c
	if o.Log, err = logging.New(c.Log); err != nil {
		return err
	}
	o.reg = prometheus.NewRegistry()
	o.mtr = metrics.New(o.reg)

	return nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}

	return false
}

func (o *RootOptions) writeStats(w io.Writer) error {
	families, err := o.reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	var lines []string
	for _, f := range families {
		for _, m := range f.GetMetric() {
			name := f.GetName()
			for _, l := range m.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", l.GetName(), l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}

	return nil
}

// emit writes v as indented JSON, or text() as plain lines.
func (o *RootOptions) emit(w io.Writer, v any, text func(io.Writer) error) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(v), "encode output")
	}

	return text(w)
}
