// Package cliopts parses this program's command line:
//
//	cache [--key|-k COLS] [--field_separator|-t SEP] [ambient flags] -- CHILD [CHILD_ARGS...]
//
// Everything after the first "--" is the child command and is never
// interpreted as a flag, even if it looks like one.
package cliopts

import (
	"flag"
	"fmt"
	"io"

	"github.com/GriffinCanCode/cache/internal/keyspec"
)

// Options holds the fully parsed command line.
type Options struct {
	Spec      keyspec.Spec
	FlushRate int

	MetricsAddr string
	LogLevel    string
	LogDev      bool

	Child     string
	ChildArgs []string
}

// Defaults mirrors the ambient fallbacks an absent flag should resolve to
// once environment configuration has been consulted; Parse uses these four
// values as the flags' defaults instead of defaults of its own, so an
// omitted flag resolves to the environment-derived value.
type Defaults struct {
	FlushRate   int
	MetricsAddr string
	LogLevel    string
	LogDev      bool
}

// Parse parses args (typically os.Args[1:]) into Options. errOut receives
// usage text on a parse error; pass os.Stderr in production.
func Parse(args []string, defaults Defaults, errOut io.Writer) (Options, error) {
	fs := flag.NewFlagSet("cache", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var key string
	fs.StringVar(&key, "key", "-1", "comma-separated 1-based column indices to hash (default: whole line)")
	fs.StringVar(&key, "k", "-1", "shorthand for -key")

	var sep string
	fs.StringVar(&sep, "field_separator", "\t", "field separator used to split columns for -key")
	fs.StringVar(&sep, "t", "\t", "shorthand for -field_separator")

	flushRate := fs.Int("flush-rate", defaults.FlushRate, "force a child-stdin flush every N novel lines")
	metricsAddr := fs.String("metrics-addr", defaults.MetricsAddr, "address to serve Prometheus metrics on (empty disables)")
	logLevel := fs.String("log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	logDev := fs.Bool("log-dev", defaults.LogDev, "use human-readable console logging instead of JSON")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	spec, err := keyspec.Parse(key, sep)
	if err != nil {
		return Options{}, fmt.Errorf("parsing -key: %w", err)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Options{}, fmt.Errorf("missing child command: expected -- CHILD [CHILD_ARGS...]")
	}

	return Options{
		Spec:        spec,
		FlushRate:   *flushRate,
		MetricsAddr: *metricsAddr,
		LogLevel:    *logLevel,
		LogDev:      *logDev,
		Child:       rest[0],
		ChildArgs:   rest[1:],
	}, nil
}
