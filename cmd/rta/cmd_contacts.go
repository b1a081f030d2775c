package main

import (
	"fmt"

	"github.com/mdkinetics/rta/contacts"
	"github.com/spf13/cobra"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "extract binding events from a distance time series",
	RunE:  runContacts,
}

func init() {
	f := contactsCmd.Flags()
	f.String("series", "", "distance series file (required)")
	f.String("meta", "", "YAML metadata sidecar (required)")
	f.String("out", "events.json.zst", "events file to write")
	f.Float64("cutoff", 7.0, "contact cutoff in A")
	f.Int("gap", 0, "off-cutoff frames tolerated inside an event")
	f.Int("min-frames", 1, "minimum event length in frames")
	_ = contactsCmd.MarkFlagRequired("series")
	_ = contactsCmd.MarkFlagRequired("meta")
	rootCmd.AddCommand(contactsCmd)
}

func runContacts(cmd *cobra.Command, _ []string) error {
	series, _ := cmd.Flags().GetString("series")
	metaname, _ := cmd.Flags().GetString("meta")
	out, _ := cmd.Flags().GetString("out")
	cutoff, _ := cmd.Flags().GetFloat64("cutoff")
	gap, _ := cmd.Flags().GetInt("gap")
	minframes, _ := cmd.Flags().GetInt("min-frames")

	meta, err := contacts.ReadMetadata(metaname)
	if err != nil {
		return err
	}
	S, header, err := contacts.New(series)
	if err != nil {
		return err
	}
	defer S.Close()
	log.Infow("reading distance series", "file", series, "residues", S.Len(), "header", header)

	o := contacts.DefaultOptions()
	o.Cutoff(cutoff)
	o.Gap(gap)
	o.MinFrames(minframes)
	meta.Cutoff = o.Cutoff()

	sets, err := contacts.Detect(S, meta, o)
	if err != nil {
		return err
	}
	nev, ncen := 0, 0
	for _, set := range sets {
		nev += set.Len()
		for _, ev := range set.Events {
			if ev.Censored {
				ncen++
			}
		}
	}
	if err := contacts.WriteEvents(out, meta, sets); err != nil {
		return err
	}
	log.Infow("events written", "file", out, "residues", len(sets), "events", nev, "censored", ncen)
	fmt.Printf("%d binding events over %d residues -> %s\n", nev, len(sets), out)
	return nil
}
