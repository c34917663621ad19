package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/valkit/valkit/metrics"
)

// StatsFlags contains flags for the stats command
type StatsFlags struct {
	File   string
	Window int
	Format string
}

// SetupStatsFlags creates and configures a FlagSet for the stats command.
func SetupStatsFlags() (*flag.FlagSet, *StatsFlags) {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	flags := &StatsFlags{}

	fs.StringVar(&flags.File, "file", "", "path to a JSON or YAML file holding an array of numbers, or '-' for stdin (required)")
	fs.IntVar(&flags.Window, "window", 0, "also compute a moving average with this window size")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: valkit stats -file <file|->\n\n")
		Writef(fs.Output(), "Compute descriptive statistics and trend analysis over a numeric series.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  valkit stats -file latencies.json\n")
		Writef(fs.Output(), "  valkit stats -file latencies.json -window 5\n")
		Writef(fs.Output(), "  echo '[1, 2, 3, 4]' | valkit stats -file -\n")
	}

	return fs, flags
}

// statsReport is the structured output shape for json/yaml formats.
type statsReport struct {
	Stats         metrics.Statistics `json:"stats" yaml:"stats"`
	Trend         *trendEntry        `json:"trend,omitempty" yaml:"trend,omitempty"`
	GrowthRate    *float64           `json:"growth_rate,omitempty" yaml:"growth_rate,omitempty"`
	MovingAverage []float64          `json:"moving_average,omitempty" yaml:"moving_average,omitempty"`
}

type trendEntry struct {
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
	RSquared  float64 `json:"r_squared" yaml:"r_squared"`
	Direction string  `json:"direction" yaml:"direction"`
}

// HandleStats executes the stats command
func HandleStats(args []string) error {
	fs, flags := SetupStatsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.File == "" {
		fs.Usage()
		return fmt.Errorf("stats command requires -file")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	series, err := loadSeries(flags.File)
	if err != nil {
		return err
	}

	stats, err := metrics.Stats(series)
	if err != nil {
		return err
	}

	report := statsReport{Stats: stats}
	if trend, err := metrics.Trend(series); err == nil {
		report.Trend = &trendEntry{
			Slope:     trend.Slope,
			Intercept: trend.Intercept,
			RSquared:  trend.RSquared,
			Direction: trend.Direction.String(),
		}
	}
	if rate, err := metrics.GrowthRate(series); err == nil {
		report.GrowthRate = &rate
	}
	if flags.Window > 0 {
		avg, err := metrics.MovingAverage(series, flags.Window)
		if err != nil {
			return fmt.Errorf("moving average: %w", err)
		}
		report.MovingAverage = avg
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(report, flags.Format)
	}

	Writef(os.Stdout, "Count:    %d\n", stats.Count)
	Writef(os.Stdout, "Mean:     %.4f\n", stats.Mean)
	Writef(os.Stdout, "Median:   %.4f\n", stats.Median)
	if stats.HasMode {
		Writef(os.Stdout, "Mode:     %.4f\n", stats.Mode)
	}
	Writef(os.Stdout, "StdDev:   %.4f\n", stats.StdDev)
	Writef(os.Stdout, "Min:      %.4f\n", stats.Min)
	Writef(os.Stdout, "Max:      %.4f\n", stats.Max)
	Writef(os.Stdout, "Q1:       %.4f\n", stats.Q1)
	Writef(os.Stdout, "Q3:       %.4f\n", stats.Q3)
	if report.Trend != nil {
		Writef(os.Stdout, "Trend:    %s (slope %.4f, r² %.4f)\n",
			report.Trend.Direction, report.Trend.Slope, report.Trend.RSquared)
	}
	if report.GrowthRate != nil {
		Writef(os.Stdout, "Growth:   %.2f%%\n", *report.GrowthRate*100)
	}
	if len(report.MovingAverage) > 0 {
		Writef(os.Stdout, "Moving Average (window %d): %v\n", flags.Window, report.MovingAverage)
	}
	return nil
}

// loadSeries reads a numeric series from a JSON or YAML array file.
func loadSeries(path string) ([]float64, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	items, ok := doc.AsArray()
	if !ok {
		return nil, fmt.Errorf("series file must hold an array of numbers, got %s", doc.Kind())
	}

	series := make([]float64, 0, len(items))
	for i, item := range items {
		n, ok := item.AsNumber()
		if !ok {
			return nil, fmt.Errorf("series item %d is %s, expected a number", i, item.Kind())
		}
		series = append(series, n)
	}
	return series, nil
}
