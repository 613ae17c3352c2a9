package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"jexam/internal/runner"
	"jexam/internal/ui/live"
)

// runGenerate builds the handler for the generate command.
func runGenerate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		masterPath := flags.String("master", "", "Path to the master notebook")
		outDir := flags.String("out", "dist", "Output directory")
		seed := flags.Int64("seed", 0, "Seed override (0 keeps the master's seed)")
		count := flags.Int("count", 0, "Number of versions override")
		format := flags.String("format", "", "Autograder format override (otter|ok)")
		strict := flags.Bool("strict", false, "Fail when any question has fewer variants than versions")
		workers := flags.Int("workers", 0, "Worker count override")
		uiMode := flags.String("ui", "auto", "Progress UI mode (auto|live|plain)")
		quiet := flags.Bool("quiet", false, "Suppress progress output")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *masterPath == "" {
			fmt.Fprintln(stderr, "--master is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiMode, *quiet, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		params := runner.Params{
			MasterPath: *masterPath,
			OutputDir:  *outDir,
			Count:      *count,
			Format:     *format,
			Workers:    *workers,
		}
		if *seed != 0 {
			params.Seed = seed
		}
		if *strict {
			on := true
			params.Strict = &on
		}

		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{})
			params.Observer = controller
		} else if !*quiet {
			params.Observer = &plainObserver{out: stdout}
		}

		results, err := runner.Run(context.Background(), params)
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Generation failed:\n%v\n", err)
			return ExitError
		}

		for _, advisory := range results.Advisories {
			fmt.Fprintf(stderr, "warning: %s\n", advisory)
		}
		if !*quiet {
			fmt.Fprintf(stdout, "Run %s: %d versions written to %s (seed %d, format %s)\n",
				results.RunID, results.VersionCount, results.OutputDir, results.Seed, results.Format)
		}
		return ExitOK
	}
}

// plainObserver logs one line per version event, no animation.
type plainObserver struct {
	out io.Writer
}

func (o *plainObserver) OnRunStart(runID string, masterPath string, versions int) {
	fmt.Fprintf(o.out, "Run %s: generating %d versions from %s\n", runID, versions, masterPath)
}

func (o *plainObserver) OnVersionEvent(event runner.VersionEvent) {
	switch event.Type {
	case runner.VersionWritten:
		fmt.Fprintf(o.out, "  %s: %d questions, %.4g points\n", event.Version, event.Questions, event.Points)
	case runner.VersionFailed:
		fmt.Fprintf(o.out, "  %s: failed: %s\n", event.Version, event.Error)
	}
}

func (o *plainObserver) OnRunEnd(runner.Results) {}
