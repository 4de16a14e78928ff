package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kolkov/elvas"
	"github.com/kolkov/elvas/internal/runtime"
)

const (
	name        = "elvas"
	description = "Script interpreter for electroweak vacuum stability calculations.\n\n" +
		"Inputs are concatenated in order; with none, the script is read from stdin."
)

// CLI is the top-level command-line interface for elvas.
type CLI struct {
	Log     logConfig     `embed:"" group:"log"     prefix:"log-"`
	Profile profileConfig `embed:"" group:"profile" prefix:"profile-"`

	Output   string           `help:"Output file (default: stdout)." placeholder:"FILE" short:"o" type:"path"`
	Version  kong.VersionFlag `help:"Print version and exit."        short:"v"`
	NoHeader bool             `help:"Disable header printing."       short:"n"`
	Config   string           `help:"YAML configuration file."       placeholder:"FILE" type:"existingfile"`
	Debug    bool             `help:"Evaluate one statement per input line." hidden:""`

	Inputs []string `arg:"" help:"Script files; '-' reads stdin." name:"input" optional:"" type:"path"`
}

// stdio holds the streams a run reads and writes.
type stdio struct {
	in       io.Reader
	out, err io.Writer
	terminal bool // in is an interactive terminal
}

// Run executes the elvas CLI with the given context and arguments.
// The exit function is called by flag handling (help, version, usage
// errors) with the appropriate exit code.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return run(ctx, exit, stdio{
		in:       os.Stdin,
		out:      os.Stdout,
		err:      os.Stderr,
		terminal: isTerminal(os.Stdin),
	}, args...)
}

func run(ctx context.Context, exit func(code int), std stdio, args ...string) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(std.out, std.err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Profile.group()},
		),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
		kong.Vars{"version": "ELVAS v" + elvas.Version}.
			CloneWith(cli.Log.vars()).
			CloneWith(cli.Profile.vars()),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := &elvas.Config{}
	if cli.Config != "" {
		if cfg, err = elvas.LoadConfig(cli.Config); err != nil {
			return err
		}
	}
	cfg.Logger = cli.Log.start(std.err, cfg.Log)

	defer cli.Profile.start(ctx)()

	return cli.exec(ctx, std, cfg)
}

func (c *CLI) exec(ctx context.Context, std stdio, cfg *elvas.Config) (err error) {
	out, err := runtime.CreateOutput(c.Output, std.out)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, out.Close()) }()

	if !c.NoHeader {
		if err := writeBanner(out); err != nil {
			return err
		}
		if len(c.Inputs) == 0 && c.Output == "" {
			fmt.Fprintln(out, "======USING STANDARD IN/OUT======")
			fmt.Fprint(out, "use \"-n\" to suppress this message\n\n")
		}
	}

	if c.Debug {
		fmt.Fprintln(out, "!!!!!DEBUG MODE!!!!!")
		w := flusher{out}
		if std.terminal && c.Output == "" {
			return repl(ctx, w, cfg)
		}
		return elvas.Interactive(std.in, w, cfg)
	}

	in, err := runtime.OpenInputs(std.in, c.Inputs...)
	if err != nil {
		return err
	}
	defer in.Close()

	cfg.Logger.Debug("running script",
		slog.Int("inputs", len(c.Inputs)),
		slog.String("output", c.Output))

	err = elvas.Run(in, out, cfg)
	var se *elvas.ScriptError
	if errors.As(err, &se) {
		if rerr := se.Render(out); rerr != nil {
			return errors.Join(err, rerr)
		}
	}
	return err
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// flusher writes through to o, flushing after every write so that
// interactive output is not held back.
type flusher struct{ o *runtime.Output }

func (f flusher) Write(p []byte) (int, error) {
	n, err := f.o.Write(p)
	if err == nil {
		err = f.o.Flush()
	}
	return n, err
}
