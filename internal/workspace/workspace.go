// Package workspace resolves a Dart/Flutter pub workspace: a root
// pubspec.yaml naming member package directories or globs, each member
// resolving to a directory with its own pubspec.yaml.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/standardbeagle/hygiene/internal/errors"
)

// Member is one resolved package root inside (or standing alone outside) a
// workspace.
type Member struct {
	Name string
	Root string // absolute directory containing this member's pubspec.yaml
}

// Workspace is the resolved set of member packages for one analysis run.
type Workspace struct {
	Root    string // absolute directory containing the workspace pubspec.yaml, or the sole member's root
	Members []Member
}

type pubspecWorkspaceShape struct {
	Name      string   `yaml:"name"`
	Workspace []string `yaml:"workspace"`
}

// Resolve finds the workspace (if any) containing startDir and expands its
// member list. When scanWorkspace is false, or no workspace manifest is
// found, startDir itself is the sole member.
func Resolve(startDir string, scanWorkspace bool) (*Workspace, []errors.Warning, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, nil, errors.NewEnvironmentError(startDir, err)
	}

	if !scanWorkspace {
		return soleMember(absStart)
	}

	root, shape, err := findWorkspaceRoot(absStart)
	if err != nil {
		return nil, nil, err
	}
	if root == "" {
		return soleMember(absStart)
	}

	var warnings []errors.Warning
	var members []Member
	seen := make(map[string]bool)

	for _, entry := range shape.Workspace {
		resolved, matchErr := expandMemberEntry(root, entry)
		if matchErr != nil {
			warnings = append(warnings, errors.Warning{
				Kind:    errors.KindEnvironment,
				File:    entry,
				Message: matchErr.Error(),
			})
			continue
		}
		for _, dir := range resolved {
			if seen[dir] {
				continue
			}
			name, ok := readPackageName(dir)
			if !ok {
				warnings = append(warnings, errors.Warning{
					Kind:    errors.KindEnvironment,
					File:    dir,
					Message: "workspace member has no pubspec.yaml",
				})
				continue
			}
			seen[dir] = true
			members = append(members, Member{Name: name, Root: dir})
		}
	}

	if len(members) == 0 {
		ws, _, err := soleMember(absStart)
		return ws, warnings, err
	}

	return &Workspace{Root: root, Members: members}, warnings, nil
}

func soleMember(dir string) (*Workspace, []errors.Warning, error) {
	name, _ := readPackageName(dir)
	return &Workspace{
		Root:    dir,
		Members: []Member{{Name: name, Root: dir}},
	}, nil, nil
}

// findWorkspaceRoot walks upward from dir looking for a pubspec.yaml whose
// "workspace" key is non-empty.
func findWorkspaceRoot(dir string) (string, *pubspecWorkspaceShape, error) {
	cur := dir
	for {
		pubspecPath := filepath.Join(cur, "pubspec.yaml")
		if content, err := os.ReadFile(pubspecPath); err == nil {
			var shape pubspecWorkspaceShape
			if err := yaml.Unmarshal(content, &shape); err == nil && len(shape.Workspace) > 0 {
				return cur, &shape, nil
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", nil, nil
		}
		cur = parent
	}
}

func expandMemberEntry(root, entry string) ([]string, error) {
	if !isGlobEntry(entry) {
		dir := filepath.Join(root, entry)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return []string{dir}, nil
		}
		return nil, fmt.Errorf("no such directory %q", entry)
	}

	matches, err := doublestar.Glob(os.DirFS(root), entry)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace glob %q: %w", entry, err)
	}
	var dirs []string
	for _, m := range matches {
		abs := filepath.Join(root, m)
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dirs = append(dirs, abs)
		}
	}
	return dirs, nil
}

func isGlobEntry(entry string) bool {
	for _, r := range entry {
		if r == '*' || r == '?' || r == '[' {
			return true
		}
	}
	return false
}

func readPackageName(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, "pubspec.yaml"))
	if err != nil {
		return "", false
	}
	var shape pubspecWorkspaceShape
	if err := yaml.Unmarshal(content, &shape); err != nil {
		return "", false
	}
	return shape.Name, true
}
