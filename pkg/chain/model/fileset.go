package model

import "strings"

// FileSet is an immutable ordered set of file paths.
// The zero value is an empty set.
type FileSet struct {
	files []string
}

// NewFileSet creates a file set from paths, dropping duplicates and keeping the first occurrence order.
func NewFileSet(paths ...string) FileSet {
	if len(paths) == 0 {
		return FileSet{}
	}

	seen := make(map[string]struct{}, len(paths))
	files := make([]string, 0, len(paths))

	for _, path := range paths {
		if _, ok := seen[path]; ok {
			continue
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	return FileSet{files: files}
}

// Files returns a copy of the paths in order.
func (fs FileSet) Files() []string {
	out := make([]string, len(fs.files))
	copy(out, fs.files)

	return out
}

func (fs FileSet) Len() int {
	return len(fs.files)
}

func (fs FileSet) Empty() bool {
	return len(fs.files) == 0
}

func (fs FileSet) Contains(path string) bool {
	for _, file := range fs.files {
		if file == path {
			return true
		}
	}

	return false
}

// Equal reports whether both sets hold the same paths in the same order.
func (fs FileSet) Equal(other FileSet) bool {
	if len(fs.files) != len(other.files) {
		return false
	}

	for i := range fs.files {
		if fs.files[i] != other.files[i] {
			return false
		}
	}

	return true
}

func (fs FileSet) String() string {
	return "{" + strings.Join(fs.files, ", ") + "}"
}
