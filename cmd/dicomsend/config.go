package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caio-sobreiro/dicomsend/archive"
	"github.com/caio-sobreiro/dicomsend/client"
)

// associationConfig holds the settings shared by every command that opens
// an association.
type associationConfig struct {
	CallingAE      string        `mapstructure:"calling-ae"`
	CalledAE       string        `mapstructure:"called-ae"`
	MaxPDU         uint32        `mapstructure:"max-pdu"`
	ConnectTimeout time.Duration `mapstructure:"connect-timeout"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
}

func (c associationConfig) client(logger *slog.Logger) client.Config {
	return client.Config{
		CallingAETitle: c.CallingAE,
		CalledAETitle:  c.CalledAE,
		MaxPDULength:   c.MaxPDU,
		ConnectTimeout: c.ConnectTimeout,
		ReadTimeout:    c.ReadTimeout,
		WriteTimeout:   c.WriteTimeout,
		Logger:         logger,
	}
}

// initConfig layers the config file and DICOMSEND_* environment variables
// under the command's flags and installs the default logger.
func initConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "dicomsend"))
		}
		viper.SetConfigName("dicomsend")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("DICOMSEND")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func addAssociationFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("calling-ae", "DICOMSEND", "Calling AE title")
	flags.String("called-ae", "ANY-SCP", "Called AE title")
	flags.Uint32("max-pdu", 16384, "Maximum PDU length to receive")
	flags.Duration("connect-timeout", 30*time.Second, "Timeout for establishing the connection")
	flags.Duration("read-timeout", 60*time.Second, "Timeout for each read from the peer")
	flags.Duration("write-timeout", 60*time.Second, "Timeout for each write to the peer")
}

// peerAddress joins the host and port arguments
func peerAddress(host, port string) string {
	return net.JoinHostPort(host, port)
}

func archivePath() string {
	if path := viper.GetString("archive"); path != "" {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "dicomsend", "archive.db")
}

func openArchive() (*archive.Store, error) {
	return archive.Open(archivePath())
}
