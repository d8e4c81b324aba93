package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/launchdash/internal/cli/config"
	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
)

// Summary output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// SummaryOptions holds options for the summary command.
type SummaryOptions struct {
	Site   string
	Low    float64
	High   float64
	Output string
}

// Summary is the machine-readable result of the summary command.
type Summary struct {
	Site      string       `json:"site" yaml:"site"`
	Title     string       `json:"title" yaml:"title"`
	Slices    []dash.Slice `json:"slices" yaml:"slices"`
	Total     int          `json:"total" yaml:"total"`
	Range     string       `json:"range" yaml:"range"`
	Inclusive bool         `json:"inclusiveBounds" yaml:"inclusive_bounds"`
	InRange   int          `json:"inRange" yaml:"in_range"`
	Successes int          `json:"successes" yaml:"successes"`
	Records   int          `json:"records" yaml:"records"`
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	opts := &SummaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard figures in the terminal",
		Long: `Load the launch data and print what the dashboard would show: the
pie slices for a launch site and how many launches fall inside a payload
range.`,
		Example: `  # Success counts per site and launches across the full payload range
  launchdash summary

  # Success vs. failure at one site, payloads between 2000 and 6000 kg
  launchdash summary --site "KSC LC-39A" --low 2000 --high 6000

  # YAML for scripting
  launchdash summary -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Site, "site", dash.AllSites, "Launch site, or All")
	cmd.Flags().Float64Var(&opts.Low, "low", 0, "Lower payload bound in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&opts.High, "high", 0, "Upper payload bound in kg (default: dataset maximum)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", FormatTable, "Output format (table|json|yaml)")

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatTable, FormatJSON, FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runSummary(cmd *cobra.Command, opts *SummaryOptions) error {
	switch opts.Output {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", opts.Output)
	}

	cfg := config.GetConfig(cmd.Context())
	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	d := dash.NewData(ds, dataOptions(cfg)...)

	rng := d.FullRange()
	if cmd.Flags().Changed("low") {
		rng.Low = opts.Low
	}
	if cmd.Flags().Changed("high") {
		rng.High = opts.High
	}

	summary := BuildSummary(d, opts.Site, rng)

	w := cmd.OutOrStdout()
	switch opts.Output {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return err
		}
		return enc.Close()
	default:
		renderSummaryTable(w, summary)
		return nil
	}
}

// BuildSummary runs both dashboard handlers for the given selection.
func BuildSummary(d *dash.Data, site string, rng dash.PayloadRange) Summary {
	pie := dash.SuccessPie(d, site)
	echo, scatter := dash.PayloadScatter(d, rng)

	s := Summary{
		Site:      site,
		Title:     pie.Title,
		Slices:    pie.Slices,
		Total:     pie.Total(),
		Range:     echo,
		Inclusive: d.InclusiveBounds,
		InRange:   len(scatter.Points),
		Records:   d.Dataset.Table.Len(),
	}
	if s.Slices == nil {
		s.Slices = []dash.Slice{}
	}
	for _, p := range scatter.Points {
		if p.Y == dash.LabelYes {
			s.Successes++
		}
	}
	return s
}

func renderSummaryTable(w io.Writer, s Summary) {
	p := message.NewPrinter(language.English)
	caser := cases.Title(language.English)

	_, _ = fmt.Fprintln(w, s.Title)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(tableStyle(w))
	t.AppendHeader(table.Row{"Slice", "Launches", "Share"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, slice := range s.Slices {
		share := 0.0
		if s.Total > 0 {
			share = 100 * float64(slice.Value) / float64(s.Total)
		}
		t.AppendRow(table.Row{slice.Label, p.Sprintf("%d", slice.Value), p.Sprintf("%.1f%%", share)})
	}
	t.AppendFooter(table.Row{"Total", p.Sprintf("%d", s.Total), ""})
	t.Render()

	bounds := "exclusive"
	if s.Inclusive {
		bounds = "inclusive"
	}
	_, _ = p.Fprintf(w, "Payload range (Kg): %s\n", s.Range)
	_, _ = p.Fprintf(w, "Bounds: %s\n", caser.String(bounds))
	_, _ = p.Fprintf(w, "%d of %d launches in range, %d successful\n", s.InRange, s.Records, s.Successes)
}

// tableStyle draws box borders on a terminal and plain ASCII when the
// output is piped or captured.
func tableStyle(w io.Writer) table.Style {
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return table.StyleLight
	}
	return table.StyleDefault
}
