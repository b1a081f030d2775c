package cff

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodRecord = `cff-version: 1.2.0
message: "If you use this software, please cite it."
title: "rta: residence-time analysis"
authors:
  - family-names: "Sexton"
    given-names: "Ricky"
  - family-names: "Beckstein"
    given-names: "Oliver"
license: GPL-3.0
date-released: "2024-11-08"
identifiers:
  - type: doi
    value: "10.1101/2024.11.07.622502"
preferred-citation:
  type: article
  title: "Bayesian nonparametric analysis of residence times"
  authors:
    - family-names: "Sexton"
      given-names: "Ricky"
  journal: "bioRxiv"
  year: 2024
  doi: "10.1101/2024.11.07.622502"
`

func TestParseAndValidate(t *testing.T) {
	f, err := Parse([]byte(goodRecord))
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	assert.Equal(t, "1.2.0", f.CFFVersion)
	assert.Len(t, f.Authors, 2)
	assert.Equal(t, "Sexton", f.Authors[0].FamilyNames)
	require.NotNil(t, f.PreferredCitation)
	assert.Equal(t, "10.1101/2024.11.07.622502", f.PreferredCitation.DOI)
	assert.Equal(t, 2024, f.PreferredCitation.Year)
}

func TestRepositoryCitation(t *testing.T) {
	f, err := ValidateFile(filepath.Join("..", "CITATION.cff"))
	require.NoError(t, err, "the repository CITATION.cff must validate")
	assert.Contains(t, f.Title, "rta")
	assert.NotEmpty(t, f.Keywords)
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*File)
		want string
	}{
		{"no version", func(f *File) { f.CFFVersion = "" }, "cff-version"},
		{"no title", func(f *File) { f.Title = "" }, "title"},
		{"no authors", func(f *File) { f.Authors = nil }, "authors"},
		{"nameless author", func(f *File) { f.Authors = []Author{{}} }, "neither"},
		{"no license", func(f *File) { f.License = "" }, "license"},
		{"bad doi", func(f *File) { f.Identifiers[0].Value = "doi:nope" }, "DOI"},
		{"bad date", func(f *File) { f.DateReleased = "Nov 8, 2024" }, "ISO-8601"},
		{"bad citation doi", func(f *File) { f.PreferredCitation.DOI = "11.1/x" }, "DOI"},
		{"empty citation", func(f *File) { f.PreferredCitation = &Reference{} }, "preferred-citation"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := Parse([]byte(goodRecord))
			require.NoError(t, err)
			c.mod(f)
			err = f.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestValidateReportsEverything(t *testing.T) {
	f, err := Parse([]byte(goodRecord))
	require.NoError(t, err)
	f.Title = ""
	f.License = ""
	err = f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "license")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("\t: not yaml"))
	assert.Error(t, err)
	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.cff"))
	assert.Error(t, err)
}
