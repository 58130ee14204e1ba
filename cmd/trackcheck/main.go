// Command trackcheck validates a track definition and converts its
// waypoint path to and from CSV.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"carrace/internal/track"
)

const usage = `trackcheck - Validate car race track definitions

Usage:
  trackcheck [flags] [track.json]

With no track file the built-in track is checked.

Flags:
  -help              Show this help message
  -no-color          Disable colored output
  -export-csv FILE   Write the opponent path as CSV ("-" for stdout)
  -import-csv FILE   Replace the opponent path with a CSV file before checking
  -png FILE          Write a preview image of the rendered track

Exit status is 1 when the track fails to load or any check fails.
`

type cliFlags struct {
	help      bool
	noColor   bool
	exportCSV string
	importCSV string
	png       string
}

func parseCLI(args []string) (cliFlags, []string, error) {
	flags := cliFlags{}
	fs := flag.NewFlagSet("trackcheck", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&flags.help, "help", false, "Show help message")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.StringVar(&flags.exportCSV, "export-csv", "", "Write the opponent path as CSV")
	fs.StringVar(&flags.importCSV, "import-csv", "", "Replace the opponent path from CSV")
	fs.StringVar(&flags.png, "png", "", "Write a preview image")

	if err := fs.Parse(args); err != nil {
		return flags, nil, err
	}
	return flags, fs.Args(), nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags, rest, err := parseCLI(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n%s", err, usage)
		return 1
	}
	if flags.help {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if len(rest) > 1 {
		fmt.Fprintf(stderr, "Error: expected at most one track file\n\n%s", usage)
		return 1
	}

	cp := newColorPrinter(flags.noColor)

	def, name, err := loadDefinition(rest)
	if err != nil {
		fmt.Fprintf(stderr, "%s %s: %v\n", cp.Red("FAIL"), name, err)
		return 1
	}

	if flags.importCSV != "" {
		if err := importPath(def, flags.importCSV); err != nil {
			fmt.Fprintf(stderr, "%s %s: %v\n", cp.Red("FAIL"), flags.importCSV, err)
			return 1
		}
	}

	assets, err := track.Build(def)
	if err != nil {
		fmt.Fprintf(stderr, "%s %s: %v\n", cp.Red("FAIL"), name, err)
		return 1
	}

	fmt.Fprintf(stdout, "%s %s (%dx%d, %d waypoints, %d levels)\n",
		cp.Cyan("track"), def.Name, def.Width, def.Height, len(def.Path), def.Levels)

	issues := track.Check(assets)
	for _, is := range issues {
		fail := is.Severity == track.SeverityFail
		fmt.Fprintf(stdout, "%s %s\n", cp.Severity(is.Severity.String(), fail), is.Message)
	}

	if flags.exportCSV != "" {
		if err := exportPath(def, flags.exportCSV, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if flags.png != "" {
		if err := writePreview(assets, flags.png); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if track.Failed(issues) {
		fmt.Fprintf(stdout, "%s %s\n", cp.Red("FAIL"), name)
		return 1
	}
	fmt.Fprintf(stdout, "%s %s\n", cp.Green("PASS"), name)
	return 0
}

func loadDefinition(args []string) (*track.Definition, string, error) {
	if len(args) == 0 {
		def, err := track.Default()
		return def, "built-in track", err
	}
	def, err := track.LoadFile(args[0])
	return def, args[0], err
}

func importPath(def *track.Definition, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pts, err := track.ReadPathCSV(f)
	if err != nil {
		return err
	}
	// Keep the road where it was when the path used to define it.
	if len(def.Centreline) == 0 {
		def.Centreline = def.Path
	}
	def.Path = pts
	return nil
}

func exportPath(def *track.Definition, path string, stdout io.Writer) error {
	if path == "-" {
		return track.WritePathCSV(stdout, def.Path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := track.WritePathCSV(f, def.Path); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePreview(a *track.Assets, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, a.Composite()); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
