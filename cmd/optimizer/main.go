package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tapmytalent/resume-optimizer/internal/cli"
	"github.com/tapmytalent/resume-optimizer/pkg/requestid"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// one correlation id for every backend call of this invocation
	ctx = requestid.ToContext(ctx, requestid.Generate())

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
