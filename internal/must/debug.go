package must

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// PrintJSON writes an indented JSON rendering of a report to stdout.
func PrintJSON(a any) {
	jsn, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		slog.Error("failed to print json", "err", err)
		return
	}

	fmt.Println(string(jsn))
}
