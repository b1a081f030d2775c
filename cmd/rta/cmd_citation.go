package main

import (
	"fmt"

	"github.com/mdkinetics/rta/cff"
	"github.com/spf13/cobra"
)

var citationCmd = &cobra.Command{
	Use:   "citation [CITATION.cff]",
	Short: "validate the citation record",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCitation,
}

func init() {
	rootCmd.AddCommand(citationCmd)
}

func runCitation(_ *cobra.Command, args []string) error {
	name := "CITATION.cff"
	if len(args) > 0 {
		name = args[0]
	}
	f, err := cff.ValidateFile(name)
	if err != nil {
		return err
	}
	fmt.Printf("%s is valid: %q", name, f.Title)
	if p := f.PreferredCitation; p != nil && p.DOI != "" {
		fmt.Printf(", cite doi:%s", p.DOI)
	}
	fmt.Println()
	return nil
}
