package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "dicomsend",
		Short: "Send DICOM objects to a storage SCP",
		Long: `dicomsend transfers DICOM files to a remote storage SCP over one or
more associations, negotiating presentation contexts per SOP class and
transfer syntax, and keeps a report of every job.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}
)

// Execute runs the root command. An interrupt cancels the running job
// between two objects.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dicomsend/dicomsend.yaml)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("archive", "", "Report archive database (default is $HOME/.local/share/dicomsend/archive.db)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(echoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
}
