package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	File    string `long:"file" description:"Path to the watch-history HTML export (overrides config)"`
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ReportCommand — run one analysis mode and print a table.
type ReportCommand struct {
	Limit   int    `long:"limit" description:"Maximum rows for top-N and first-N modes" default:"0"`
	Year    int    `long:"year" description:"Restrict the mode to one year"`
	Channel string `long:"channel" description:"Channel name (or part of it) for channel modes"`
	Date    string `long:"date" description:"Date (YYYY-MM-DD) for on-date modes"`
	Keyword string `long:"keyword" description:"Keyword for title search"`

	Args struct {
		Mode string `positional-arg-name:"mode" description:"Analysis mode (see the modes command)"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// SearchCommand — case-insensitive substring search over titles.
type SearchCommand struct {
	Limit int `long:"limit" description:"Maximum results" default:"0"`
	Year  int `long:"year" description:"Restrict the search to one year"`

	Args struct {
		Keyword []string `positional-arg-name:"keyword" description:"Words to search titles for"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// ChartCommand — run one analysis mode and render a bar chart.
type ChartCommand struct {
	Width   int    `long:"width" description:"Bar width of the largest value (default from config)"`
	Year    int    `long:"year" description:"Restrict the mode to one year"`
	Date    string `long:"date" description:"Date (YYYY-MM-DD) for on-date modes"`
	Channel string `long:"channel" description:"Channel name (or part of it) for channel modes"`

	Args struct {
		Mode string `positional-arg-name:"mode" description:"Analysis mode (see the modes command)"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// SummaryCommand — totals split by kind, span, dropped counts.
type SummaryCommand struct {
	globals *GlobalFlags
	version string
}

// ModesCommand — list the analysis catalog.
type ModesCommand struct {
	globals *GlobalFlags
	version string
}
