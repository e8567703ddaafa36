// Package gate implements the destructive-action confirmation gate for
// `assets --delete`: one confirmation over the full candidate list, never
// per-file.
package gate

import "os"

// Confirm asks the caller (the CLI glue) to approve a destructive action
// given the full list of paths it would affect.
type Confirm func(paths []string) (bool, error)

// Gate guards one destructive operation behind a single Confirm call.
type Gate struct {
	Confirm Confirm
}

// New builds a Gate with the given confirmation callback.
func New(confirm Confirm) *Gate {
	return &Gate{Confirm: confirm}
}

// Run confirms paths once, then calls delete for each path only if approved.
// It never asks for confirmation per-path; one confirmation covers the
// entire batch.
func (g *Gate) Run(paths []string, delete func(path string) error) (deleted []string, err error) {
	if len(paths) == 0 {
		return nil, nil
	}
	ok, err := g.Confirm(paths)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	for _, p := range paths {
		if err := delete(p); err != nil {
			return deleted, err
		}
		deleted = append(deleted, p)
	}
	return deleted, nil
}

// DeleteFile removes the file at root-joined relPath. Exposed as the
// default `delete` callback for cmd/hygiene.
func DeleteFile(path string) error {
	return os.Remove(path)
}
