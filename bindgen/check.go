package bindgen

import (
	"bytes"
	"os"

	"github.com/teranos/bindgen/errors"
)

// CheckResult holds the result of comparing a committed module with a fresh
// generation.
type CheckResult struct {
	UpToDate bool
	Path     string
	// Missing is true when there is no committed module at Path
	Missing bool
	// Line is the 1-based first differing line, 0 when up to date
	Line int
	// Want is the freshly generated line, Got the committed one
	Want string
	Got  string
}

// Compare reads the module at path and compares it with generated.
func Compare(path string, generated []byte) (*CheckResult, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &CheckResult{Path: path, Missing: true, Line: 1}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	result := &CheckResult{Path: path}
	if bytes.Equal(existing, generated) {
		result.UpToDate = true
		return result, nil
	}

	want := bytes.Split(generated, []byte("\n"))
	got := bytes.Split(existing, []byte("\n"))
	for i := 0; i < len(want) || i < len(got); i++ {
		var w, g []byte
		if i < len(want) {
			w = want[i]
		}
		if i < len(got) {
			g = got[i]
		}
		// A line present on one side only differs even when it is empty
		if i >= len(want) || i >= len(got) || !bytes.Equal(w, g) {
			result.Line = i + 1
			result.Want = string(w)
			result.Got = string(g)
			break
		}
	}
	return result, nil
}

// Err returns nil when the module is up to date and an ErrOutOfDate error
// describing the first difference otherwise.
func (r *CheckResult) Err() error {
	if r.UpToDate {
		return nil
	}
	err := errors.Wrapf(errors.ErrOutOfDate, "%s", r.Path)
	if r.Missing {
		return errors.WithDetail(err, "module does not exist")
	}
	return errors.WithDetailf(err, "line %d: want %q, got %q", r.Line, r.Want, r.Got)
}
