/*Package cff parses and validates CITATION.cff citation records
(Citation File Format, https://citation-file-format.github.io).

Only the subset of the schema this repository uses is modeled; unknown
keys are ignored on parse. Validation enforces what citation tooling
actually needs: a declared cff-version, non-empty title, authors and
license, well-formed DOI identifiers and ISO-8601 dates.*/
package cff

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

//the DOI directory indicator plus a 4-9 digit registrant code, then
//any non-blank suffix.
var doiRe = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

const dateLayout = "2006-01-02" //ISO-8601 calendar date

// Author is one entry of an authors list.
type Author struct {
	FamilyNames string `yaml:"family-names"`
	GivenNames  string `yaml:"given-names"`
	ORCID       string `yaml:"orcid,omitempty"`
	Affiliation string `yaml:"affiliation,omitempty"`
}

// Identifier is one entry of an identifiers list.
type Identifier struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

// Reference models a preferred-citation block.
type Reference struct {
	Type    string   `yaml:"type"`
	Title   string   `yaml:"title"`
	Authors []Author `yaml:"authors"`
	DOI     string   `yaml:"doi,omitempty"`
	Journal string   `yaml:"journal,omitempty"`
	Year    int      `yaml:"year,omitempty"`
	URL     string   `yaml:"url,omitempty"`
}

// File is a parsed CITATION.cff.
type File struct {
	CFFVersion        string       `yaml:"cff-version"`
	Message           string       `yaml:"message"`
	Title             string       `yaml:"title"`
	Abstract          string       `yaml:"abstract,omitempty"`
	Authors           []Author     `yaml:"authors"`
	Identifiers       []Identifier `yaml:"identifiers,omitempty"`
	DateReleased      string       `yaml:"date-released,omitempty"`
	License           string       `yaml:"license"`
	Repository        string       `yaml:"repository-code,omitempty"`
	URL               string       `yaml:"url,omitempty"`
	Keywords          []string     `yaml:"keywords,omitempty"`
	PreferredCitation *Reference   `yaml:"preferred-citation,omitempty"`
}

// Parse decodes a CFF record from YAML bytes.
func Parse(data []byte) (*File, error) {
	f := new(File)
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("cff: malformed YAML: %w", err)
	}
	return f, nil
}

// ParseFile reads and decodes a CITATION.cff file.
func ParseFile(name string) (*File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("cff: %w", err)
	}
	return Parse(data)
}

// Validate checks the record. All problems found are reported, joined
// into a single error.
func (f *File) Validate() error {
	var errs []error
	add := func(format string, a ...any) {
		errs = append(errs, fmt.Errorf(format, a...))
	}
	if f.CFFVersion == "" {
		add("cff-version is missing")
	}
	if f.Title == "" {
		add("title is empty")
	}
	if len(f.Authors) == 0 {
		add("authors list is empty")
	}
	for i, a := range f.Authors {
		if a.FamilyNames == "" && a.GivenNames == "" {
			add("author %d has neither family-names nor given-names", i+1)
		}
	}
	if f.License == "" {
		add("license is empty")
	}
	for _, id := range f.Identifiers {
		if id.Type == "doi" && !doiRe.MatchString(id.Value) {
			add("identifier %q is not a valid DOI", id.Value)
		}
	}
	if f.DateReleased != "" {
		if _, err := time.Parse(dateLayout, f.DateReleased); err != nil {
			add("date-released %q is not an ISO-8601 date", f.DateReleased)
		}
	}
	if p := f.PreferredCitation; p != nil {
		if p.Title == "" {
			add("preferred-citation title is empty")
		}
		if len(p.Authors) == 0 {
			add("preferred-citation authors list is empty")
		}
		if p.DOI != "" && !doiRe.MatchString(p.DOI) {
			add("preferred-citation doi %q is not a valid DOI", p.DOI)
		}
	}
	return errors.Join(errs...)
}

// ValidateFile parses and validates a CITATION.cff file in one call.
func ValidateFile(name string) (*File, error) {
	f, err := ParseFile(name)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("cff: %s: %w", name, err)
	}
	return f, nil
}
