// Package cli wires the analysis engine to the command line: it owns
// file loading, dispatch into the query catalog and console output.
package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Report  *ReportCommand
	Search  *SearchCommand
	Chart   *ChartCommand
	Summary *SummaryCommand
	Modes   *ModesCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "watchlog"
	parser.LongDescription = "Analytics over a YouTube watch-history export: parse the Takeout HTML into viewing records and answer ranking, grouping and search queries over them."

	cmds := &commands{
		Report:  &ReportCommand{globals: &globals, version: version},
		Search:  &SearchCommand{globals: &globals, version: version},
		Chart:   &ChartCommand{globals: &globals, version: version},
		Summary: &SummaryCommand{globals: &globals, version: version},
		Modes:   &ModesCommand{globals: &globals, version: version},
	}

	parser.AddCommand("report", "Run one analysis mode", "Run one mode of the analysis catalog and print the result as a table.", cmds.Report)
	parser.AddCommand("search", "Search video titles", "Case-insensitive substring search over watched video titles.", cmds.Search)
	parser.AddCommand("chart", "Render an analysis mode as a bar chart", "Run one analysis mode and render its series as a horizontal bar chart.", cmds.Chart)
	parser.AddCommand("summary", "Show history totals", "Show record totals split by kind, the covered time span, and dropped-fragment counts.", cmds.Summary)
	parser.AddCommand("modes", "List the analysis catalog", "List every analysis mode the report and chart commands accept.", cmds.Modes)

	return parser, &globals, cmds
}

// Run is the main entry point for the watchlog CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("watchlog %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
