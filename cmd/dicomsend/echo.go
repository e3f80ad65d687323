package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caio-sobreiro/dicomsend/client"
	"github.com/caio-sobreiro/dicomsend/types"
)

var echoCmd = &cobra.Command{
	Use:   "echo HOST PORT",
	Short: "Verify that a peer answers C-ECHO",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg associationConfig
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}

		peer := peerAddress(args[0], args[1])
		start := time.Now()
		rsp, err := client.Echo(cmd.Context(), peer, cfg.client(slog.Default()))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s@%s: %s (0x%04X) in %s\n",
			cfg.CalledAE, peer, types.StatusString(rsp.Status), rsp.Status,
			time.Since(start).Round(time.Millisecond))
		if rsp.Status != types.StatusSuccess {
			return fmt.Errorf("C-ECHO returned status 0x%04X", rsp.Status)
		}
		return nil
	},
}

func init() {
	addAssociationFlags(echoCmd)
}
