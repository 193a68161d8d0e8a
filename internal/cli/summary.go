package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"watchlog/internal/query"
)

// summaryJSON is the JSON output structure for the summary command.
type summaryJSON struct {
	Version            string `json:"version"`
	Records            int    `json:"records"`
	Videos             int    `json:"videos"`
	Ads                int    `json:"ads"`
	DroppedMalformed   int    `json:"dropped_malformed"`
	DroppedUnparseable int    `json:"dropped_unparseable"`
	Oldest             string `json:"oldest,omitempty"`
	Newest             string `json:"newest,omitempty"`
}

// Execute implements the go-flags Commander interface for SummaryCommand.
func (c *SummaryCommand) Execute(args []string) error {
	engine, _, err := buildEngine(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEngine(engine)
}

// executeWithEngine runs the summary against a provided engine (for testing).
func (c *SummaryCommand) executeWithEngine(engine *query.Engine) error {
	res, err := engine.Run(query.ModeSummary, query.Params{})
	if err != nil {
		return err
	}
	s := res.Summary

	if c.globals != nil && c.globals.JSON {
		out := summaryJSON{
			Version:            c.version,
			Records:            s.Records,
			Videos:             s.Videos,
			Ads:                s.Ads,
			DroppedMalformed:   s.Dropped.Malformed,
			DroppedUnparseable: s.Dropped.Unparseable,
		}
		if s.Records > 0 {
			out.Oldest = s.Oldest.Format(time.RFC3339)
			out.Newest = s.Newest.Format(time.RFC3339)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println("Watchlog Summary")
	fmt.Println("================")
	fmt.Printf("Records:      %d\n", s.Records)
	fmt.Printf("Videos:       %d\n", s.Videos)
	fmt.Printf("Ads:          %d\n", s.Ads)
	fmt.Printf("Dropped:      %d (%d malformed, %d unparseable)\n",
		s.Dropped.Total(), s.Dropped.Malformed, s.Dropped.Unparseable)
	if s.Records > 0 {
		fmt.Printf("Oldest:       %s\n", s.Oldest.Format("2006-01-02"))
		fmt.Printf("Newest:       %s\n", s.Newest.Format("2006-01-02"))
	}

	return nil
}
