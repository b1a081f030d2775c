package contacts

import (
	"fmt"

	rta "github.com/mdkinetics/rta"
)

//Errors

//errDecorate is a helper function that asserts that the error
//implements rta.Error and decorates the error with the caller's name before returning it.
//if used with a non-rta.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(rta.Error)
	err2.Decorate(caller)
	return err2
}

// Error is the general structure for distance-series and events-file errors. It fullfills rta.Error and rta.DataError
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("contacts file %s error: %s", err.filename, err.message)
}

// Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the file to which the failing series was associated
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file associated to the error
func (err Error) Format() string { return "series" }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	SeriesUnIniRead     = "Series object uninitialized to read"
	SeriesUnIniWrite    = "Series object uninitialized to write"
	ReadError           = "Error reading frame"
	UnableToOpen        = "Unable to open file"
	SecurityCheckFailed = "Failed security check"
	NilDistances        = "Given nil distances"
	WrongFormat         = "Wrong format in the series file or frame"
	NotEnoughSpace      = "Not enough space in passed slice"
	EOF                 = "EOF"
)

// lastFrameError implements rta.LastEventError
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastEventTermination does nothing, it only marks the error as a normal termination
func (E lastFrameError) NormalLastEventTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "series" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
