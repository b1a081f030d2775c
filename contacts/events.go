package contacts

import (
	"bufio"
	"encoding/json"
	"os"

	rta "github.com/mdkinetics/rta"
)

//the on-disk envelope of an events file.
type eventsFile struct {
	Metadata *Metadata       `json:"metadata"`
	Sets     []*rta.EventSet `json:"sets"`
}

// WriteEvents writes the binding events of all residues, with the
// series metadata embedded, as a JSON events file. The file is
// compressed according to its extension (.zst recommended).
func WriteEvents(name string, meta *Metadata, sets []*rta.EventSet) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), name, []string{"WriteEvents"}, true}
	}
	defer f.Close()
	h, err := newCompWriter(f, name, 3)
	if err != nil {
		return Error{"Can't set up compression: " + err.Error(), name, []string{"WriteEvents"}, true}
	}
	enc := json.NewEncoder(h)
	if err := enc.Encode(eventsFile{Metadata: meta, Sets: sets}); err != nil {
		h.Close()
		return Error{err.Error(), name, []string{"WriteEvents"}, true}
	}
	if err := h.Close(); err != nil {
		return Error{err.Error(), name, []string{"WriteEvents"}, true}
	}
	return nil
}

// ReadEvents reads an events file written by WriteEvents.
func ReadEvents(name string) (*Metadata, []*rta.EventSet, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"ReadEvents"}, true}
	}
	defer f.Close()
	h, err := newCompReader(bufio.NewReader(f), name)
	if err != nil {
		return nil, nil, Error{"Can't set up decompression: " + err.Error(), name, []string{"ReadEvents"}, true}
	}
	defer h.Close()
	var ev eventsFile
	if err := json.NewDecoder(h).Decode(&ev); err != nil {
		return nil, nil, Error{"Can't parse events file: " + err.Error(), name, []string{"ReadEvents"}, true}
	}
	if ev.Metadata != nil {
		if err := ev.Metadata.Check(); err != nil {
			return nil, nil, errDecorate(err, "ReadEvents")
		}
	}
	return ev.Metadata, ev.Sets, nil
}

// Source walks the event sets of an events file one residue at a time.
// It implements rta.EventSource.
type Source struct {
	sets     []*rta.EventSet
	i        int
	filename string
}

// NewSource opens an events file and returns a Source over its residues
// plus the embedded metadata.
func NewSource(name string) (*Source, *Metadata, error) {
	meta, sets, err := ReadEvents(name)
	if err != nil {
		return nil, nil, errDecorate(err, "NewSource")
	}
	return &Source{sets: sets, filename: name}, meta, nil
}

// Readable reports whether there are residues left to read.
func (s *Source) Readable() bool {
	return s.i < len(s.sets)
}

// NextSet returns the event set of the next residue. Exhaustion is
// signaled with an error implementing rta.LastEventError.
func (s *Source) NextSet() (*rta.EventSet, error) {
	if !s.Readable() {
		return nil, newLastFrameError(s.filename, "NextSet")
	}
	set := s.sets[s.i]
	s.i++
	return set, nil
}
