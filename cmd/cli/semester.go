package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/classtools/push-relay/internal/semester"
)

var (
	atFlag   string
	listFlag bool
)

var semesterCmd = &cobra.Command{
	Use:   "semester",
	Short: "Print the semester label resolved for a timestamp",
	Long:  `Resolves a timestamp (now, unless --at is given) against the configured semester intervals, exactly as the relay does at ingest time.`,
	RunE:  runSemester,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	semesterCmd.Flags().StringVar(&atFlag, "at", "", "Timestamp to resolve (RFC3339 or YYYY-MM-DD, interpreted in the configured timezone)")
	semesterCmd.Flags().BoolVar(&listFlag, "list", false, "List the configured intervals in resolution order instead of resolving")
	rootCmd.AddCommand(semesterCmd)
}

func runSemester(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if listFlag {
		resolver := semester.NewResolver(cfg.Semesters)
		for _, interval := range resolver.Intervals() {
			cmd.Printf("%s: %s .. %s\n",
				interval.Label,
				interval.Start.Format(time.RFC3339),
				interval.End.Format(time.RFC3339),
			)
		}
		return nil
	}

	at := time.Now().In(cfg.Timezone)
	if atFlag != "" {
		at, err = parseTimestamp(atFlag, cfg.Timezone)
		if err != nil {
			return err
		}
	}

	resolver := semester.NewResolver(cfg.Semesters)
	label, ok := resolver.Resolve(at)
	if !ok {
		cmd.Printf("%s: no semester\n", at.Format(time.RFC3339))
		return nil
	}
	cmd.Printf("%s: %s\n", at.Format(time.RFC3339), label)
	return nil
}

func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", value)
}
