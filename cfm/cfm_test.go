package cfm_test

import (
	"testing"

	"github.com/jetsetilly/rv32oosim/cfm"
	"github.com/stretchr/testify/require"
)

func TestProbeMissOnEmptyMap(t *testing.T) {
	m := cfm.New()
	_, hit := m.Probe(0x1000)
	require.False(t, hit)
}

func TestLearnThenProbe(t *testing.T) {
	m := cfm.New()
	m.Learn(0x2000, cfm.Entry{Class: cfm.ExitStatic, Lane: 2, Target: 0x4000})
	m.Tick()

	entry, hit := m.Probe(0x2000)
	require.True(t, hit)
	require.Equal(t, cfm.ExitStatic, entry.Class)
	require.Equal(t, uint32(0x4000), entry.Target)
}

func TestTakenCounterSaturates(t *testing.T) {
	var taken cfm.Taken
	for i := 0; i < 10; i++ {
		taken = taken.Update(true)
	}
	require.Equal(t, cfm.StronglyTaken, taken)
	require.True(t, taken.Predicted())

	for i := 0; i < 10; i++ {
		taken = taken.Update(false)
	}
	require.Equal(t, cfm.StronglyNotTaken, taken)
	require.False(t, taken.Predicted())
}

func TestTakenCounterWeaklyTakenPredictsTaken(t *testing.T) {
	taken := cfm.StronglyNotTaken.Update(true)
	require.Equal(t, cfm.WeaklyNotTaken, taken)
	require.False(t, taken.Predicted())

	taken = taken.Update(true)
	require.Equal(t, cfm.WeaklyTaken, taken)
	require.True(t, taken.Predicted())
}

func TestLearnOverwritesOnDuplicateKeyWithinOneCycle(t *testing.T) {
	// Two Learn calls to the same block address in one cycle: the CAM's
	// pinned LIFO write ordering means the earliest-driven call wins.
	m := cfm.New()
	m.Learn(0x3000, cfm.Entry{Class: cfm.ExitStatic, Target: 0x5000})
	m.Learn(0x3000, cfm.Entry{Class: cfm.ExitStatic, Target: 0x6000})
	m.Tick()

	entry, hit := m.Probe(0x3000)
	require.True(t, hit)
	require.Equal(t, uint32(0x5000), entry.Target)
}
