package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	cmdcalculate "transport-stats/command/calculate"
	cmdimport "transport-stats/command/import"
	cmdweb "transport-stats/command/web"
)

// Public transport usage analytics.
// Usage:
//   transport-stats import -url https://example.org/Public_Transport_Usage_Trends.csv
//   transport-stats calculate [-countries A,B] [-from 2018] [-to 2022] [-types Bus,Metro] [-min_satisfaction 3] [-xlsx]
//   transport-stats web [-addr :8080]
// Notes:
// - A .env file in the working directory is loaded first if present.
// - CONFIG_PATH points to a YAML config (default ./config.yml); LOG_LEVEL sets slog verbosity.

func main() {
	_ = godotenv.Load()

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))})
	slog.SetDefault(slog.New(h))

	args := os.Args
	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		var run func([]string) error
		switch sub {
		case "import":
			run = cmdimport.Run
		case "calculate":
			run = cmdcalculate.Run
		case "web":
			run = cmdweb.Run
		}
		if run != nil {
			if err := run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "usage: transport-stats import [-url <csv url>] [-out <path>] | calculate [-data <csv>] [-out ./data] [-xlsx] [filters] | web [-addr :8080] [-data <csv>] [-ui ./ui/dist]\nfilters: -countries a,b -types a,b -from <year> -to <year> -min_satisfaction <score>\nENV: CONFIG_PATH (default ./config.yml), LOG_LEVEL (debug|info|warn|error)")
	os.Exit(2)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
