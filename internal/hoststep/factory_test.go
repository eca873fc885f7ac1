package hoststep_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-sourcechain/internal/hoststep"
	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

func TestFactoryNew(t *testing.T) {
	t.Parallel()

	f := hoststep.NewFactory()

	step, err := f.New(hoststep.SortType, "mainSort")
	require.NoError(t, err)
	assert.IsType(t, &hoststep.SortStep{}, step)
	assert.Equal(t, "mainSort", step.Name())

	step, err = f.New(hoststep.ExcludeType, "mainExclude")
	require.NoError(t, err)
	assert.True(t, step.(*hoststep.FilterStep).Exclude)

	_, err = f.New("MinifyTask", "mainMinify")
	require.ErrorIs(t, err, hoststep.ErrUnknownStepType)
}

func TestFactoryRegister(t *testing.T) {
	t.Parallel()

	f := hoststep.NewFactory()

	err := f.Register("UglifyJsTask", "Minify", func(name string) model.Step { return hoststep.NewPassStep(name) })
	require.NoError(t, err)

	displayName, ok := f.DisplayName("UglifyJsTask")
	require.True(t, ok)
	assert.Equal(t, "Minify", displayName)

	_, ok = f.DisplayName(hoststep.SortType)
	assert.False(t, ok)

	_, ok = f.DisplayName("unknown")
	assert.False(t, ok)

	err = f.Register(hoststep.SortType, "", nil)
	require.ErrorIs(t, err, hoststep.ErrStepTypeExists)

	assert.Equal(t, []string{
		hoststep.ExcludeType,
		hoststep.IncludeType,
		hoststep.PassType,
		hoststep.PrefixType,
		hoststep.SortType,
		"UglifyJsTask",
	}, f.Types())
}
