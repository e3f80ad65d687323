package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caio-sobreiro/dicomsend/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve PORT",
	Short: "Run a storage SCP that writes received objects to a directory",
	Long: `Run a storage SCP. Every object received is written as a Part 10 file
named after its SOP instance UID. Useful as a test peer for send.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("dir", ".", "Directory receiving the objects")
	flags.String("ae-title", "STORESCP", "AE title of the SCP")
	flags.Bool("any-called-ae", false, "Accept associations whatever the called AE title")
	flags.Duration("read-timeout", 0, "Timeout for each read from a peer (0 means none)")
	flags.Duration("write-timeout", 0, "Timeout for each write to a peer (0 means none)")
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("dir")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	opts := []server.Option{
		server.WithLogger(slog.Default()),
		server.WithReadTimeout(viper.GetDuration("read-timeout")),
		server.WithWriteTimeout(viper.GetDuration("write-timeout")),
	}
	if viper.GetBool("any-called-ae") {
		opts = append(opts, server.WithAnyCalledAETitle())
	}

	err := server.ListenAndServe(cmd.Context(), net.JoinHostPort("", args[0]),
		viper.GetString("ae-title"), &server.DirectoryHandler{Dir: dir}, opts...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
