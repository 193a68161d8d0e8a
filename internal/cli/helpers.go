package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"watchlog/internal/config"
	"watchlog/internal/history"
	"watchlog/internal/index"
	"watchlog/internal/query"
	"watchlog/internal/report"
	"watchlog/internal/takeout"
)

// loadConfig resolves the config from --config or the default path.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}

// newLogger builds the stderr console logger. --verbose forces debug
// level; otherwise the configured level applies.
func newLogger(globals *GlobalFlags, cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil && cfg.Logging.Level != "" {
		level = parsed
	}
	if globals != nil && globals.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// buildEngine loads the export file, builds the record store and
// returns a query engine over it. The file path comes from --file,
// falling back to the configured one.
func buildEngine(globals *GlobalFlags) (*query.Engine, *config.Config, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(globals, cfg)

	path := cfg.History.File
	if globals != nil && globals.File != "" {
		path = globals.File
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history export: %w", err)
	}
	defer f.Close()

	fragments, err := takeout.Split(f)
	if err != nil {
		return nil, nil, fmt.Errorf("split history export: %w", err)
	}
	log.Debug().Int("fragments", len(fragments)).Str("file", path).Msg("export loaded")

	store := history.Build(fragments, history.Options{
		Location: cfg.Location(),
		Logger:   log,
	})
	if dropped := store.Dropped(); dropped.Total() > 0 {
		log.Warn().
			Int("malformed", dropped.Malformed).
			Int("unparseable", dropped.Unparseable).
			Msg("fragments dropped during build")
	}

	return query.New(store, index.New(store)), cfg, nil
}

// printTable writes a table with aligned columns.
func printTable(t report.Table) {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(t.Columns)
	seps := make([]string, len(t.Columns))
	for i := range seps {
		seps[i] = strings.Repeat("-", widths[i])
	}
	printRow(seps)
	for _, row := range t.Rows {
		printRow(row)
	}

	if len(t.Rows) == 0 {
		fmt.Println("(no matching records)")
	}
}

type jsonTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// printJSONTable writes the table in JSON form for scripting.
func printJSONTable(t report.Table) error {
	out := jsonTable{Columns: t.Columns, Rows: t.Rows}
	if out.Rows == nil {
		out.Rows = [][]string{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type jsonSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// printJSONSeries writes a chart series in JSON form for external renderers.
func printJSONSeries(s report.Series) error {
	out := jsonSeries{Labels: s.Labels, Values: s.Values}
	if out.Labels == nil {
		out.Labels = []string{}
	}
	if out.Values == nil {
		out.Values = []int{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// printResult writes a query result as table output, honoring --json.
func printResult(globals *GlobalFlags, res *query.Result) error {
	t := report.BuildTable(res)
	if globals != nil && globals.JSON {
		return printJSONTable(t)
	}
	printTable(t)
	return nil
}
