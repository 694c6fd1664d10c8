package machine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGCCollectSweepsUnreachable(t *testing.T) {
	gc := NewGC()

	kept := gc.NewString("kept")
	var root *ObjString = kept
	gc.AddRootSource(func() []Obj { return []Obj{root} })

	gc.NewString("garbage")
	require.Len(t, gc.objects, 2)

	gc.Collect()
	require.Len(t, gc.objects, 1)
	require.Same(t, kept, gc.objects[0])
}

func TestGCStressCollectsOnEveryAllocation(t *testing.T) {
	gc := NewGC()
	gc.Stress = true

	var root Obj
	gc.AddRootSource(func() []Obj {
		if root == nil {
			return nil
		}
		return []Obj{root}
	})

	root = gc.NewString("survivor")
	for i := 0; i < 10; i++ {
		gc.NewString(fmt.Sprintf("transient-%d", i))
	}
	// Stress mode collects before each allocation, so every unrooted
	// transient string is swept by the next allocation. Only the rooted
	// string and the last transient (allocated after the final collection)
	// remain.
	require.Len(t, gc.objects, 2)
	require.Equal(t, "survivor", gc.objects[0].String())
	require.Equal(t, "transient-9", gc.objects[1].String())
}

func TestInternDeduplicates(t *testing.T) {
	gc := NewGC()
	a := gc.NewString("same")
	b := gc.NewString("same")
	require.Same(t, a, b)
	require.Len(t, gc.objects, 1)
}
