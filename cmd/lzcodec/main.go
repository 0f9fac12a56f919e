// Command lzcodec compresses, decompresses and inspects LZ77 containers.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"

	"github.com/adilg123/lz77-elias-codec/internal/config"
	"github.com/adilg123/lz77-elias-codec/internal/logger"
)

const progName = "lzcodec"

var log = logging.MustGetLogger(progName)

// errUsage marks argument errors; main prints the usage text for them.
var errUsage = errors.New("usage error")

func usageMessage() string {
	return fmt.Sprintf(`Usage:
  %[1]s compress [-o out] [-progress] <inputPath> [windowLimit lookaheadLimit]
  %[1]s decompress [-o out] <binPath>
  %[1]s inspect <binPath>

Configuration is read from the environment and from the YAML file named by %[2]s.
`, progName, config.ConfigFileEnv)
}

func main() {
	cfg, err := config.LoadWithFile(os.Getenv(config.ConfigFileEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progName, err)
		os.Exit(2)
	}
	logger.Setup(progName+": ", cfg.LogLevel, os.Stderr)

	if err := run(cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%s: %v\n\n", progName, err)
			io.WriteString(os.Stderr, usageMessage())
			os.Exit(2)
		}
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing subcommand", errUsage)
	}
	switch args[0] {
	case "compress":
		return runCompress(cfg, args[1:], stdout)
	case "decompress":
		return runDecompress(cfg, args[1:], stdout)
	case "inspect":
		return runInspect(args[1:], stdout)
	case "help", "-h", "-help", "--help":
		io.WriteString(stdout, usageMessage())
		return nil
	default:
		return fmt.Errorf("%w: unknown subcommand %q", errUsage, args[0])
	}
}
