package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"watchlog/internal/query"
)

type modeJSON struct {
	Mode        string `json:"mode"`
	Description string `json:"description"`
}

// Execute implements the go-flags Commander interface for ModesCommand.
// It needs no engine: the catalog is static.
func (c *ModesCommand) Execute(args []string) error {
	infos := query.Modes()

	if c.globals != nil && c.globals.JSON {
		out := make([]modeJSON, len(infos))
		for i, info := range infos {
			out[i] = modeJSON{Mode: string(info.Mode), Description: info.Description}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	width := 0
	for _, info := range infos {
		if len(info.Mode) > width {
			width = len(info.Mode)
		}
	}
	for _, info := range infos {
		fmt.Printf("%-*s  %s\n", width, info.Mode, info.Description)
	}
	return nil
}
