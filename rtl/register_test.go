package rtl_test

import (
	"testing"

	"github.com/jetsetilly/rv32oosim/internal/curated"
	"github.com/jetsetilly/rv32oosim/rtl"
	"github.com/stretchr/testify/require"
)

func TestRegisterOutputBeforeTick(t *testing.T) {
	r := rtl.NewRegister(0)
	require.NoError(t, r.Assign(42))
	require.Equal(t, 0, r.Output(), "Assign must not be visible before Tick")
	r.Tick()
	require.Equal(t, 42, r.Output())
}

func TestRegisterDriverConflict(t *testing.T) {
	r := rtl.NewRegister(0)
	require.NoError(t, r.Assign(1))
	err := r.Assign(2)
	require.Error(t, err)
	require.True(t, curated.Is(err, curated.DriverConflict))
}

func TestRegisterNoAssignHoldsValue(t *testing.T) {
	r := rtl.NewRegister(7)
	r.Tick()
	require.Equal(t, 7, r.Output())
}

func TestRegisterFileIndependentCells(t *testing.T) {
	rf := rtl.NewRegisterFile(4, 0)
	require.NoError(t, rf.Write(1, 11))
	require.NoError(t, rf.Write(3, 33))
	rf.Tick()
	require.Equal(t, 0, rf.Read(0))
	require.Equal(t, 11, rf.Read(1))
	require.Equal(t, 33, rf.Read(3))
}

func TestRegisterFileDriverConflict(t *testing.T) {
	rf := rtl.NewRegisterFile(2, 0)
	require.NoError(t, rf.Write(0, 1))
	err := rf.Write(0, 2)
	require.Error(t, err)
	require.True(t, curated.Is(err, curated.DriverConflict))
}
