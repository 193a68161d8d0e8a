package cli

import (
	"fmt"
	"strings"

	"watchlog/internal/query"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	engine, cfg, err := buildEngine(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEngine(engine, cfg.Output.Limit)
}

// executeWithEngine runs the search against a provided engine (for testing).
func (c *SearchCommand) executeWithEngine(engine *query.Engine, defaultLimit int) error {
	keyword := strings.Join(c.Args.Keyword, " ")
	if strings.TrimSpace(keyword) == "" {
		return fmt.Errorf("search requires a keyword")
	}

	limit := c.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	res, err := engine.Run(query.ModeSearchTitles, query.Params{
		Limit:   limit,
		Year:    c.Year,
		Keyword: keyword,
	})
	if err != nil {
		return err
	}

	if c.globals == nil || !c.globals.JSON {
		if len(res.Records) == 0 {
			fmt.Printf("No titles match %q\n", keyword)
			return nil
		}
		fmt.Printf("Found %d matching records for %q\n\n", len(res.Records), keyword)
	}

	return printResult(c.globals, res)
}
