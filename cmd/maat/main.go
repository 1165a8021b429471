// Command maat is a UCI chess engine.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/FGiesemann/MaatChessEngine/engine"
	"github.com/FGiesemann/MaatChessEngine/uci"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	debug := flag.Bool("debug", false, "enable debug logging to engine_debug.log")
	flag.Parse()

	log := newLogger(*debug)

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		loaded, err := engine.LoadConfig(*configPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to load config, using defaults")
		} else {
			cfg = loaded
		}
	}

	eng := engine.New(cfg, log)
	proto := uci.New(eng, os.Stdin, os.Stdout, log)
	proto.Run()
}

// newLogger mirrors original_source's --debug flag: by default logging
// is a no-op (console logging is reserved for stderr only, so it never
// collides with UCI traffic on stdout); --debug adds a file sink and
// raises the level, without reviving a package-level singleton logger.
func newLogger(debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}

	f, err := os.OpenFile("engine_debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	log := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	log.Info().Msg("engine logging started")
	return log
}
