// Command malariasim runs the malaria spread simulation.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/comalice/malariasim/internal/config"

	malariasimcmd "github.com/comalice/malariasim/internal/cmd/malariasim"
)

func main() {
	cfg, err := malariasimcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("malariasim: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := malariasimcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("malariasim: %v", err)
	}
}
