package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var instantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseInstant accepts RFC 3339 timestamps, or local date-times and dates
// which are interpreted in loc.
func parseInstant(v string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD", v)
}

type rangeFlags struct {
	start string
	end   string
}

func (f *rangeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.start, "start", "", "range start (inclusive)")
	fs.StringVar(&f.end, "end", "", "range end")
}

func (f *rangeFlags) markRequired(cmd *cobra.Command) {
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func (f *rangeFlags) resolve(loc *time.Location) (domain.QueryRange, error) {
	start, err := parseInstant(f.start, loc)
	if err != nil {
		return domain.QueryRange{}, fmt.Errorf("--start: %w", err)
	}
	end, err := parseInstant(f.end, loc)
	if err != nil {
		return domain.QueryRange{}, fmt.Errorf("--end: %w", err)
	}
	return domain.NewQueryRange(start, end)
}

// formatFlag is a pflag.Value restricted to a fixed set of output formats.
type formatFlag struct {
	value   string
	allowed []string
}

func newFormatFlag(def string, allowed ...string) *formatFlag {
	return &formatFlag{value: def, allowed: allowed}
}

func (f *formatFlag) String() string { return f.value }
func (f *formatFlag) Type() string   { return "format" }

func (f *formatFlag) Set(v string) error {
	for _, a := range f.allowed {
		if v == a {
			f.value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", f.allowed)
}
