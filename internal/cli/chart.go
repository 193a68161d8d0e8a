package cli

import (
	"fmt"

	"watchlog/internal/query"
	"watchlog/internal/render"
	"watchlog/internal/report"
)

// Execute implements the go-flags Commander interface for ChartCommand.
func (c *ChartCommand) Execute(args []string) error {
	engine, cfg, err := buildEngine(c.globals)
	if err != nil {
		return err
	}
	width := c.Width
	if width == 0 {
		width = cfg.Output.ChartWidth
	}
	return c.executeWithEngine(engine, width)
}

// executeWithEngine renders the chart against a provided engine (for testing).
func (c *ChartCommand) executeWithEngine(engine *query.Engine, width int) error {
	mode, err := query.ParseMode(c.Args.Mode)
	if err != nil {
		return err
	}

	res, err := engine.Run(mode, query.Params{
		Year:    c.Year,
		Date:    c.Date,
		Channel: c.Channel,
	})
	if err != nil {
		return err
	}

	series, err := report.BuildSeries(res)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSONSeries(series)
	}

	fmt.Print(render.BarChart(series, width))
	return nil
}
