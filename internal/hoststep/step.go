// Package hoststep provides a small host for chains: steps working on file sets only
// and the factory building them.
package hoststep

import (
	"context"
	"path"
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

// ErrInputMustBeSet is returned when a step runs without an input.
var ErrInputMustBeSet = errors.New("input must be set")

type base struct {
	name   string
	input  model.Source
	output model.FileSet
}

func (b *base) Name() string {
	return b.name
}

func (b *base) SetInput(src model.Source) {
	b.input = src
}

func (b *base) Output() model.FileSet {
	return b.output
}

func (b *base) resolveInput() (model.FileSet, error) {
	if b.input == nil {
		return model.FileSet{}, errors.Wrapf(ErrInputMustBeSet, "step %q", b.name)
	}

	return b.input.Resolve(), nil
}

// PassStep copies its input to its output.
type PassStep struct {
	base
}

func NewPassStep(name string) *PassStep {
	return &PassStep{base: base{name: name}}
}

func (s *PassStep) Run(_ context.Context) error {
	input, err := s.resolveInput()
	if err != nil {
		return err
	}

	s.output = input

	return nil
}

// FilterStep keeps the files matching at least one pattern, or drops them when Exclude is set.
// Patterns use path.Match syntax and are tried against the full path and the base name.
type FilterStep struct {
	base
	Patterns []string
	Exclude  bool
}

func NewIncludeStep(name string) *FilterStep {
	return &FilterStep{base: base{name: name}}
}

func NewExcludeStep(name string) *FilterStep {
	return &FilterStep{base: base{name: name}, Exclude: true}
}

func (s *FilterStep) Run(_ context.Context) error {
	input, err := s.resolveInput()
	if err != nil {
		return err
	}

	kept := []string{}

	for _, file := range input.Files() {
		matched, err := s.match(file)
		if err != nil {
			return err
		}

		if matched != s.Exclude {
			kept = append(kept, file)
		}
	}

	s.output = model.NewFileSet(kept...)

	return nil
}

func (s *FilterStep) match(file string) (bool, error) {
	for _, pattern := range s.Patterns {
		for _, candidate := range []string{file, path.Base(file)} {
			ok, err := path.Match(pattern, candidate)
			if err != nil {
				return false, errors.Wrapf(err, "invalid pattern %q", pattern)
			}

			if ok {
				return true, nil
			}
		}
	}

	return false, nil
}

// SortStep sorts its input paths.
type SortStep struct {
	base
	Reverse bool
}

func NewSortStep(name string) *SortStep {
	return &SortStep{base: base{name: name}}
}

func (s *SortStep) Run(_ context.Context) error {
	input, err := s.resolveInput()
	if err != nil {
		return err
	}

	files := input.Files()
	sort.Strings(files)

	if s.Reverse {
		for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
			files[i], files[j] = files[j], files[i]
		}
	}

	s.output = model.NewFileSet(files...)

	return nil
}

// PrefixStep moves every input path under Dir.
type PrefixStep struct {
	base
	Dir string
}

func NewPrefixStep(name string) *PrefixStep {
	return &PrefixStep{base: base{name: name}}
}

func (s *PrefixStep) Run(_ context.Context) error {
	input, err := s.resolveInput()
	if err != nil {
		return err
	}

	files := input.Files()
	for i, file := range files {
		files[i] = path.Join(s.Dir, file)
	}

	s.output = model.NewFileSet(files...)

	return nil
}

var (
	_ model.Runner = (*PassStep)(nil)
	_ model.Runner = (*FilterStep)(nil)
	_ model.Runner = (*SortStep)(nil)
	_ model.Runner = (*PrefixStep)(nil)
)
