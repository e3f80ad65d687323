package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caio-sobreiro/dicomsend/client"
	"github.com/caio-sobreiro/dicomsend/dicom"
	"github.com/caio-sobreiro/dicomsend/metrics"
	"github.com/caio-sobreiro/dicomsend/storescu"
	"github.com/caio-sobreiro/dicomsend/types"
)

type sendConfig struct {
	Association associationConfig `mapstructure:",squash"`

	ReadMode                string `mapstructure:"read-mode"`
	Lenient                 bool   `mapstructure:"lenient"`
	Recursive               bool   `mapstructure:"recursive"`
	ReadDICOMDIR            bool   `mapstructure:"read-dicomdir"`
	HaltOnInvalidFile       bool   `mapstructure:"halt-on-invalid-file"`
	HaltOnUnsuccessfulStore bool   `mapstructure:"halt-on-unsuccessful-store"`
	Decompression           string `mapstructure:"decompression"`
	AllowIllegalProposals   bool   `mapstructure:"allow-illegal-proposals"`
	SingleSession           bool   `mapstructure:"single-session"`
	Priority                uint16 `mapstructure:"priority"`
	MoveOriginatorAE        string `mapstructure:"move-originator-ae"`
	MoveOriginatorID        uint16 `mapstructure:"move-originator-id"`
	MaxFailures             int    `mapstructure:"max-failures"`

	NoProgress   bool   `mapstructure:"no-progress"`
	ReportFormat string `mapstructure:"report-format"`
	ReportFile   string `mapstructure:"report-file"`
	NoArchive    bool   `mapstructure:"no-archive"`
	MetricsFile  string `mapstructure:"metrics-file"`
}

var sendCmd = &cobra.Command{
	Use:   "send HOST PORT PATH...",
	Short: "Send files to a storage SCP",
	Long: `Send DICOM files to a storage SCP. Directories are scanned for files,
recursively unless --recursive=false is given. With --read-dicomdir a
DICOMDIR is replaced by the objects it references.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runSend,
}

func init() {
	addAssociationFlags(sendCmd)

	flags := sendCmd.Flags()
	flags.String("read-mode", "auto", "How files are read: auto, file-only or dataset-only")
	flags.Bool("lenient", false, "Only check that the identifying UIDs are present")
	flags.Bool("recursive", true, "Scan directories recursively")
	flags.Bool("read-dicomdir", false, "Send the objects a DICOMDIR references")
	flags.Bool("halt-on-invalid-file", false, "Stop at the first file that cannot be queued")
	flags.Bool("halt-on-unsuccessful-store", false, "Stop at the first object the peer does not store")
	flags.String("decompression", "lossless", "Offer native fallbacks for compressed objects: never, lossless or lossy")
	flags.Bool("allow-illegal-proposals", false, "Propose compressed syntaxes without a native fallback")
	flags.Bool("single-session", false, "Use at most one association")
	flags.Uint16("priority", 0, "C-STORE priority: 0 medium, 1 high, 2 low")
	flags.String("move-originator-ae", "", "Move originator AE title sent with each C-STORE")
	flags.Uint16("move-originator-id", 0, "Move originator message ID sent with each C-STORE")
	flags.Int("max-failures", 0, "Stop after this many unsuccessful stores (0 means no limit)")
	flags.Bool("no-progress", false, "Do not display a progress bar")
	flags.String("report-format", "text", "Report printed after the job: text, yaml or none")
	flags.String("report-file", "", "Write the report to this file instead of stdout")
	flags.Bool("no-archive", false, "Do not save the report in the archive")
	flags.String("metrics-file", "", "Write transfer metrics in the Prometheus text format to this file")
}

func runSend(cmd *cobra.Command, args []string) error {
	var cfg sendConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	logger := slog.Default()

	readMode, err := dicom.ParseReadMode(cfg.ReadMode)
	if err != nil {
		return err
	}
	decompression, err := storescu.ParseDecompressionMode(cfg.Decompression)
	if err != nil {
		return err
	}

	paths, err := collectFiles(args[2:], cfg.Recursive)
	if err != nil {
		return err
	}

	list := storescu.NewTransferList(storescu.ListOptions{
		HaltOnInvalidFile: cfg.HaltOnInvalidFile,
		ReadFromDICOMDIR:  cfg.ReadDICOMDIR,
		Logger:            logger,
	})
	added, skipped, err := list.AddFiles(paths, readMode, !cfg.Lenient)
	if err != nil {
		return err
	}
	logger.Info("Queued objects", "added", added, "skipped", skipped)
	if added == 0 {
		return errors.New("no object to send")
	}

	peer := peerAddress(args[0], args[1])
	engine := storescu.NewEngine(client.New(cfg.Association.client(logger)), storescu.Config{
		Address:                 peer,
		Decompression:           decompression,
		AllowIllegalProposals:   cfg.AllowIllegalProposals,
		HaltOnUnsuccessfulStore: cfg.HaltOnUnsuccessfulStore,
		SingleSession:           cfg.SingleSession,
		Priority:                cfg.Priority,
		MoveOriginatorAETitle:   cfg.MoveOriginatorAE,
		MoveOriginatorMessageID: cfg.MoveOriginatorID,
		Logger:                  logger,
	})

	var bars *progressBars
	if !cfg.NoProgress {
		bars = newProgressBars(cmd.Context(), list.CountPending())
	}
	start := time.Now()
	jobErr := engine.RunJob(cmd.Context(), list, newSendObserver(bars, cfg.MaxFailures))
	if bars != nil {
		bars.shutdown()
	}

	report := storescu.NewReport(list, fmt.Sprintf("%s@%s", cfg.Association.CalledAE, peer), nil)
	logger.Info("Job finished",
		"sessions", engine.SessionCount(),
		"contexts", engine.ChannelCount(),
		"sent", humanize.Bytes(uint64(sentBytes(list))),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if err := writeReport(report, cfg.ReportFormat, cfg.ReportFile); err != nil {
		logger.Error("Cannot write report", "error", err)
	}
	if !cfg.NoArchive {
		saveReport(cmd.Context(), report, logger)
	}
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("Cannot write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	if jobErr != nil {
		return jobErr
	}
	if !report.Summary.Successful() {
		return fmt.Errorf("%d of %d objects were not stored", report.Summary.Total-report.Summary.Success-report.Summary.Warning, report.Summary.Total)
	}
	return nil
}

// collectFiles expands directories into the regular files below them, in
// lexical order.
func collectFiles(args []string, recursive bool) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// newSendObserver feeds the progress bars and stops the job once
// maxFailures objects were not stored.
func newSendObserver(bars *progressBars, maxFailures int) storescu.Observer {
	failures := 0
	return storescu.ObserverFuncs{
		Before: func(entry *storescu.TransferEntry) {
			if bars != nil {
				bars.begin(entry)
			}
		},
		After: func(entry *storescu.TransferEntry) {
			if !types.IsAcceptableStoreStatus(entry.Status) {
				failures++
			}
			if bars != nil {
				bars.done(entry)
			}
		},
		Stop: func() bool {
			return maxFailures > 0 && failures >= maxFailures
		},
	}
}

func sentBytes(list *storescu.TransferList) int64 {
	var total int64
	for _, entry := range list.Entries() {
		if entry.NetworkTransferSyntax != "" {
			total += entry.Size
		}
	}
	return total
}

func writeReport(report *storescu.Report, format, path string) error {
	if format == "none" {
		return nil
	}

	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "yaml":
		return report.WriteYAML(w)
	case "", "text":
		return report.WriteText(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func saveReport(ctx context.Context, report *storescu.Report, logger *slog.Logger) {
	store, err := openArchive()
	if err != nil {
		logger.Error("Cannot open report archive", "error", err)
		return
	}
	defer store.Close()

	id, err := store.Save(context.WithoutCancel(ctx), report)
	if err != nil {
		logger.Error("Cannot archive report", "error", err)
		return
	}
	logger.Info("Report archived", "job", id)
}
