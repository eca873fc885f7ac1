package chain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/askiada/go-sourcechain/pkg/chain"
	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

// checkWiring verifies that every registered step is fed by its current predecessor
// and every removed step resolves to an empty input.
func checkWiring(t require.TestingT, c *chain.Chain, removed []*fakeStep) {
	steps := c.Steps()
	for i, step := range steps {
		input := step.(*fakeStep).Input()
		if i == 0 {
			require.Equal(t, c.Source().Files(), input, "step %s at 0", step.Name())

			continue
		}

		require.Equal(t, steps[i-1].Output(), input, "step %s at %d", step.Name(), i)
	}

	for _, step := range removed {
		require.Equal(t, chain.NotFound, c.IndexOf(step))
		require.True(t, step.Input().Empty(), "removed step %s", step.Name())
	}
}

func TestPropertyWiringFollowsOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c, err := chain.New(model.NewStaticSourceSet("main", "a.js"), &fakeFactory{})
		require.NoError(rt, err)

		removed := []*fakeStep{}
		ops := rapid.IntRange(1, 40).Draw(rt, "ops")

		for i := 0; i < ops; i++ {
			switch op := rapid.IntRange(0, 2).Draw(rt, "op"); {
			case op == 0 || c.Len() == 0:
				stepType := rapid.SampledFrom([]string{"MinifyTask", "ConcatTask", "GzipTask", "HashTask"}).Draw(rt, "type")
				_, err := c.Materialize(stepType, chain.WithName(fmt.Sprintf("%s%d", stepType, i)))
				require.NoError(rt, err)
			case op == 1:
				index := rapid.IntRange(0, c.Len()-1).Draw(rt, "remove")
				step, err := c.Get(index)
				require.NoError(rt, err)
				require.NoError(rt, c.RemoveStep(step))

				removed = append(removed, step.(*fakeStep))
			default:
				from := rapid.IntRange(0, c.Len()-1).Draw(rt, "from")
				to := rapid.IntRange(0, c.Len()-1).Draw(rt, "to")
				step, err := c.Get(from)
				require.NoError(rt, err)
				require.NoError(rt, c.Move(step.Name(), to))
				require.Equal(rt, to, c.IndexOf(step))
			}
		}

		checkWiring(rt, c, removed)
	})
}

func TestPropertyNamesStayUnique(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c, err := chain.New(model.NewStaticSourceSet("main"), &fakeFactory{})
		require.NoError(rt, err)

		names := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c", "d"}), 1, 20).Draw(rt, "names")
		seen := map[string]bool{}

		for _, name := range names {
			before := c.Names()

			_, err := c.Materialize("MinifyTask", chain.WithName(name))
			if seen[name] {
				require.ErrorIs(rt, err, chain.ErrDuplicateName)
				require.Equal(rt, before, c.Names())

				continue
			}

			require.NoError(rt, err)

			seen[name] = true
		}

		require.Len(rt, c.Names(), len(seen))
	})
}
