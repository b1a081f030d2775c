package contacts

import (
	"fmt"
	"os"

	rta "github.com/mdkinetics/rta"
	"gopkg.in/yaml.v3"
)

// Metadata is the YAML sidecar describing a distance series: where it
// came from and how to interpret it. It is also embedded in events
// files so downstream stages don't need the sidecar anymore.
type Metadata struct {
	TrajLen   int      `yaml:"trajlen" json:"trajlen"`                     //frames in the source trajectory
	NProtein  int      `yaml:"protein_residues" json:"protein_residues"`   //residues in the protein selection
	NLigand   int      `yaml:"ligand_molecules" json:"ligand_molecules"`   //ligand molecules tracked
	Selection string   `yaml:"selection,omitempty" json:"selection"`       //protein selection string, as used upstream
	Ligand    string   `yaml:"ligand,omitempty" json:"ligand"`             //ligand selection string
	Timestep  float64  `yaml:"timestep" json:"timestep"`                   //ns per frame
	Cutoff    float64  `yaml:"cutoff,omitempty" json:"cutoff"`             //contact cutoff used, in A
	Resids    []int    `yaml:"resids,omitempty" json:"resids,omitempty"`   //residue numbers of the tracked residues
	Resnames  []string `yaml:"resnames,omitempty" json:"resnames,omitempty"` //three-letter names of the tracked residues
}

// ReadMetadata parses a YAML metadata sidecar.
func ReadMetadata(name string) (*Metadata, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"ReadMetadata"}, true}
	}
	m := new(Metadata)
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, Error{"Can't parse metadata: " + err.Error(), name, []string{"ReadMetadata"}, true}
	}
	if err := m.Check(); err != nil {
		return nil, errDecorate(err, "ReadMetadata")
	}
	return m, nil
}

// Write writes the metadata as a YAML sidecar.
func (m *Metadata) Write(name string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return Error{err.Error(), name, []string{"Metadata.Write"}, true}
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return Error{err.Error(), name, []string{"Metadata.Write"}, true}
	}
	return nil
}

// Check verifies the fields needed by the rest of the pipeline.
func (m *Metadata) Check() error {
	if m.Timestep <= 0 {
		return Error{fmt.Sprintf("non-positive timestep %v", m.Timestep), "", []string{"Metadata.Check"}, true}
	}
	if m.Resids != nil && m.Resnames != nil && len(m.Resids) != len(m.Resnames) {
		return Error{fmt.Sprintf("%d resids but %d resnames", len(m.Resids), len(m.Resnames)), "", []string{"Metadata.Check"}, true}
	}
	return nil
}

// Label returns the label of the i-th tracked residue, e.g. "W313".
// Without residue names in the metadata it falls back to "RES<i>".
func (m *Metadata) Label(i int) string {
	if i < len(m.Resids) && i < len(m.Resnames) {
		return rta.ResidueLabel(m.Resnames[i], m.Resids[i])
	}
	return fmt.Sprintf("RES%d", i)
}

// Resid returns the residue number of the i-th tracked residue, or i
// itself when the metadata carries no numbering.
func (m *Metadata) Resid(i int) int {
	if i < len(m.Resids) {
		return m.Resids[i]
	}
	return i
}
