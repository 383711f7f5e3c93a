package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbrokmeier/tagungsplan/internal/conftool"
	"github.com/jbrokmeier/tagungsplan/internal/program"
	"github.com/jbrokmeier/tagungsplan/internal/reconcile"
)

var abstractsCmd = &cobra.Command{
	Use:   "abstracts",
	Short: "Merge abstracts from the ConfTool export into the program",
	RunE:  runAbstracts,
}

func init() {
	rootCmd.AddCommand(abstractsCmd)
}

func runAbstracts(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintln(out, "Extracting sessions from HTML...")
	extracted := conftool.ExtractSessions(string(export))

	totalPres, withAbstract := 0, 0
	for _, s := range extracted {
		totalPres += len(s.Presentations)
		for _, p := range s.Presentations {
			if p.Abstract != "" {
				withAbstract++
			}
		}
	}
	fmt.Fprintf(out, "  Found %d sessions in HTML\n", len(extracted))
	fmt.Fprintf(out, "  Found %d presentations in HTML\n", totalPres)
	fmt.Fprintf(out, "  Of which %d have non-empty abstracts\n", withAbstract)

	before := prog.Count()
	fmt.Fprintf(out, "\n  Found %d sessions in program\n", before.Sessions)
	fmt.Fprintf(out, "  Found %d presentations in program\n", before.Presentations)

	fmt.Fprintln(out, "\nMatching and updating...")
	res := reconcile.Abstracts(prog, extracted, cfg.Threshold)

	fmt.Fprintln(out, "\n=== RESULTS ===")
	fmt.Fprintf(out, "  Abstracts added: %d\n", res.Added)
	if len(res.Unmatched) > 0 {
		fmt.Fprintf(out, "\n  Unmatched HTML sessions with abstracts (%d):\n", len(res.Unmatched))
		for _, label := range res.Unmatched {
			fmt.Fprintf(out, "    - %s\n", label)
		}
	}

	fmt.Fprintln(out, "\nWriting updated program file...")
	n, err := program.Save(cfg.ProgramJSON, prog)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Written %d bytes to %s\n", n, cfg.ProgramJSON)

	return verifyProgram(out, cfg.ProgramJSON)
}

// verifyProgram re-reads the freshly written file and prints the abstract
// counts, confirming the write round-trips.
func verifyProgram(out io.Writer, path string) error {
	verified, err := program.Load(path)
	if err != nil {
		return fmt.Errorf("verify written program: %w", err)
	}
	c := verified.Count()
	fmt.Fprintln(out, "\n=== VERIFICATION ===")
	fmt.Fprintf(out, "  Session-level abstracts: %d\n", c.SessionAbstracts)
	fmt.Fprintf(out, "  Presentation-level abstracts: %d\n", c.PresentationAbstracts)
	fmt.Fprintf(out, "  Total abstracts in program: %d\n", c.Total())
	return nil
}
