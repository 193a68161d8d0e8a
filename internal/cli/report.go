package cli

import (
	"watchlog/internal/query"
)

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	engine, cfg, err := buildEngine(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEngine(engine, cfg.Output.Limit)
}

// executeWithEngine runs the report against a provided engine (for testing).
func (c *ReportCommand) executeWithEngine(engine *query.Engine, defaultLimit int) error {
	mode, err := query.ParseMode(c.Args.Mode)
	if err != nil {
		return err
	}

	limit := c.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	res, err := engine.Run(mode, query.Params{
		Limit:   limit,
		Year:    c.Year,
		Channel: c.Channel,
		Date:    c.Date,
		Keyword: c.Keyword,
	})
	if err != nil {
		return err
	}

	return printResult(c.globals, res)
}
