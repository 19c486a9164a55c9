package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/vlavrik/flespi-gateway/internal/timeconv"
)

// printJSON writes v to stdout as indented JSON, for the --json flag.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// humanTime renders a unix timestamp for table output; the raw number is
// kept when the timezone lookup fails.
func humanTime(ts int64, zone string) string {
	s, err := timeconv.FromUnix(ts, zone)
	if err != nil {
		return strconv.FormatInt(ts, 10)
	}
	return s
}
