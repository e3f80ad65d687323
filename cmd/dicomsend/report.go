package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect the reports of past jobs",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived jobs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		jobs, err := store.List(cmd.Context(), viper.GetInt("limit"))
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tWHEN\tPEER\tTOTAL\tSTORED\tFAILED\tNOT SENT")
		for _, job := range jobs {
			s := job.Summary
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
				job.ID, humanize.Time(job.CreatedAt), job.Peer,
				s.Total, s.Success+s.Warning, s.Failed+s.Refused, s.NotSent)
		}
		return tw.Flush()
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print the full report of a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		report, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		switch format := viper.GetString("format"); format {
		case "yaml":
			return report.WriteYAML(cmd.OutOrStdout())
		case "text":
			return report.WriteText(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unknown report format %q", format)
		}
	},
}

var reportFindCmd = &cobra.Command{
	Use:   "find SOP-INSTANCE-UID",
	Short: "List the jobs that sent an instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		ids, err := store.FindInstance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove a job from the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	reportListCmd.Flags().Int("limit", 20, "Maximum number of jobs listed")
	reportShowCmd.Flags().String("format", "text", "Output format: text or yaml")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportFindCmd)
	reportCmd.AddCommand(reportDeleteCmd)
}
