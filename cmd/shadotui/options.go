package main

import (
	"flag"
	"fmt"
	"io"
)

type options struct {
	appTickMS    int
	renderTickMS int
	configPath   string
	showVersion  bool

	appTickSet    bool
	renderTickSet bool
}

// parseOptions reads the command line. Each flag has a short and a long
// spelling.
func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("shadotui", flag.ContinueOnError)
	fs.SetOutput(stderr)

	for _, name := range []string{"a", "app-tick-rate"} {
		fs.IntVar(&opts.appTickMS, name, 1000, "app tick period in milliseconds")
	}
	for _, name := range []string{"r", "render-tick-rate"} {
		fs.IntVar(&opts.renderTickMS, name, 50, "render tick period in milliseconds")
	}
	for _, name := range []string{"c", "config"} {
		fs.StringVar(&opts.configPath, name, "", "config file (default ~/.shadotui/config.yaml then ./.shadotui/config.yaml)")
	}
	fs.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a", "app-tick-rate":
			opts.appTickSet = true
		case "r", "render-tick-rate":
			opts.renderTickSet = true
		}
	})
	return opts, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: shadotui [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FLAGS:")
	fmt.Fprintln(w, "  -a, --app-tick-rate <ms>       App tick period (default 1000)")
	fmt.Fprintln(w, "  -r, --render-tick-rate <ms>    Render tick period (default 50)")
	fmt.Fprintln(w, "  -c, --config <path>            Config file")
	fmt.Fprintln(w, "      --version                  Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "KEYS:")
	fmt.Fprintln(w, "  j / k      schedule an increment / decrement")
	fmt.Fprintln(w, "  /          enter input mode (Enter submits, Esc leaves)")
	fmt.Fprintln(w, "  l          toggle the other pane")
	fmt.Fprintln(w, "  Ctrl+Z     suspend")
	fmt.Fprintln(w, "  q, Ctrl+C  quit")
}
