package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbrokmeier/tagungsplan/internal/conftool"
	"github.com/jbrokmeier/tagungsplan/internal/program"
	"github.com/jbrokmeier/tagungsplan/internal/reconcile"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Merge authors, affiliations and session chairs into the program",
	RunE:  runAuthors,
}

func init() {
	rootCmd.AddCommand(authorsCmd)
}

func runAuthors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Reading HTML export...")
	export, err := os.ReadFile(cfg.ExportHTML)
	if err != nil {
		return fmt.Errorf("read HTML export: %w", err)
	}

	fmt.Fprintln(out, "Reading program file...")
	prog, err := program.Load(cfg.ProgramJSON)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Extracting authors from HTML...")
	records := conftool.ExtractAuthors(string(export))
	fmt.Fprintf(out, "  Found %d presentations with authors in HTML\n", len(records))

	fmt.Fprintln(out, "Extracting chairs from HTML...")
	chairs := conftool.ExtractChairs(string(export))
	fmt.Fprintf(out, "  Found %d sessions with chairs in HTML\n", len(chairs))

	res := reconcile.Authors(prog, records, chairs, cfg.Threshold)

	for _, ch := range res.Chairs {
		fmt.Fprintf(out, "  Added chair for %s: %s\n", ch.SessionID, ch.Chair)
	}
	for _, title := range res.Unmatched {
		if r := []rune(title); len(r) > 80 {
			title = string(r[:80])
		}
		fmt.Fprintf(out, "  WARNING: No author match for: %s\n", title)
	}

	fmt.Fprintln(out, "\n=== RESULTS ===")
	fmt.Fprintf(out, "  Authors added to %d presentations\n", res.AuthorsAdded)
	fmt.Fprintf(out, "  Chairs added to %d sessions\n", len(res.Chairs))

	fmt.Fprintln(out, "\nWriting updated program file...")
	n, err := program.Save(cfg.ProgramJSON, prog)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Written %d bytes to %s\n", n, cfg.ProgramJSON)

	// Verify by re-reading and counting author coverage.
	verified, err := program.Load(cfg.ProgramJSON)
	if err != nil {
		return fmt.Errorf("verify written program: %w", err)
	}
	withAuthors, without := 0, 0
	for _, day := range verified.Days {
		for _, s := range day.Sessions {
			for _, p := range s.Presentations {
				if len(p.Authors) > 0 {
					withAuthors++
				} else {
					without++
				}
			}
		}
	}
	fmt.Fprintln(out, "\n=== VERIFICATION ===")
	fmt.Fprintf(out, "  Presentations with authors: %d\n", withAuthors)
	fmt.Fprintf(out, "  Presentations without authors: %d\n", without)
	return nil
}
