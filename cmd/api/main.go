package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/pflag"

	"user-balance-service/cmd/api/app"
	"user-balance-service/cmd/api/server"
	"user-balance-service/internal/config"
)

func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.BindFlags(fs)
	_ = fs.Parse(os.Args[1:])

	a, err := app.New(context.Background(), fs)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	ctx, stop := server.WithSignal(context.Background(), a.Logger)
	err = a.Run(ctx)
	stop()
	if err != nil {
		log.Fatalf("application exited with error: %v", err)
	}
}
