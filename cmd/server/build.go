package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenthands/cograph/internal/config"
	"github.com/agenthands/cograph/internal/core"
	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/errors"
	"github.com/agenthands/cograph/internal/ingest"
)

var (
	buildRecords     string
	buildYearMin     int
	buildYearMax     int
	buildTopN        int
	buildTypes       []string
	buildWindow      string
	buildTau         float64
	buildCommunities string
	buildIndent      bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the pipeline once and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildParams(cmd)
		if err != nil {
			return err
		}

		path := cfg.Data.RecordsPath
		if buildRecords != "" {
			path = buildRecords
		}
		records, _, err := ingest.LoadRecords(path)
		if err != nil {
			return err
		}

		res, err := core.RunParallel(cmd.Context(), records, p, cfg.Concurrency.Aggregate)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		if buildIndent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(res)
	},
}

func init() {
	f := buildCmd.Flags()
	f.StringVar(&buildRecords, "records", "", "records file (default data.records_path)")
	f.IntVar(&buildYearMin, "year-min", 0, "first publication year")
	f.IntVar(&buildYearMax, "year-max", 0, "last publication year")
	f.IntVar(&buildTopN, "top-n", 0, "records kept per category")
	f.StringSliceVar(&buildTypes, "types", nil, "categories to include")
	f.StringVar(&buildWindow, "window", "", "citation window")
	f.Float64Var(&buildTau, "tau", 0, "citation quantile")
	f.StringVar(&buildCommunities, "communities", "", "community detection: lpa, components or none")
	f.BoolVar(&buildIndent, "indent", false, "indent JSON output")
}

// buildParams overlays explicitly set flags on the configured defaults.
func buildParams(cmd *cobra.Command) (model.Params, error) {
	p, err := cfg.Params()
	if err != nil {
		return model.Params{}, err
	}

	f := cmd.Flags()
	if f.Changed("year-min") {
		p.YearMin = buildYearMin
	}
	if f.Changed("year-max") {
		p.YearMax = buildYearMax
	}
	if f.Changed("top-n") {
		p.TopN = buildTopN
	}
	if f.Changed("types") {
		p.Categories = p.Categories[:0]
		for _, name := range buildTypes {
			c, err := model.ParseCategory(name)
			if err != nil {
				return model.Params{}, errors.Wrap(errors.ErrInvalidParams, err.Error())
			}
			p.Categories = append(p.Categories, c)
		}
	}
	if f.Changed("window") {
		p.Window = buildWindow
	}
	if f.Changed("tau") {
		p.Tau = buildTau
	}
	if f.Changed("communities") {
		p.Communities = buildCommunities
	}

	if err := config.ValidateParams(p); err != nil {
		return model.Params{}, err
	}
	return p, nil
}
