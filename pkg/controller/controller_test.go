package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misl-switch/mislswitch-go/pkg/registers"
)

func TestSetClearBit(t *testing.T) {
	sim := NewSimulator()

	require.NoError(t, SetBit(sim, registers.GlobalControl0, 5))
	v, err := sim.ReadRegister(registers.GlobalControl0)
	require.NoError(t, err)
	assert.Equal(t, uint8(1<<5), v&(1<<5))

	require.NoError(t, ClearBit(sim, registers.GlobalControl0, 5))
	v, err = sim.ReadRegister(registers.GlobalControl0)
	require.NoError(t, err)
	assert.Zero(t, v&(1<<5))
}

func TestPulseBitSelfClears(t *testing.T) {
	sim := NewSimulator()
	base, err := registers.PortBase(0)
	require.NoError(t, err)
	addr := base + registers.LinkMD0Offset

	require.NoError(t, PulseBit(sim, addr, 4))
	v, err := sim.ReadRegister(addr)
	require.NoError(t, err)
	assert.Zero(t, v&(1<<4), "diagnostic trigger must self-clear")
}

type stuckIO struct{}

func (stuckIO) ReadRegister(uint8) (uint8, error) { return 0x00, nil }
func (stuckIO) WriteRegister(uint8, uint8) error  { return nil }

func TestWriteVerifyFails(t *testing.T) {
	err := SetBit(stuckIO{}, 0x10, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVerifyFailed)
}

func TestSimulatorIdentity(t *testing.T) {
	sim := NewSimulator()
	id, err := sim.ReadRegister(registers.GlobalInfo)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x40), id&0xF0, "family id in high nibble")
	assert.NotZero(t, id&0x01, "switch started")
}

func TestVLANLifecycle(t *testing.T) {
	sim := NewSimulator()

	require.NoError(t, sim.EnableFiltering())
	v, err := sim.ReadRegister(registers.GlobalControl3)
	require.NoError(t, err)
	assert.NotZero(t, v&(1<<7))

	require.NoError(t, sim.AddEntry(VLANEntry{ID: 100, Membership: 0x03}))
	require.NoError(t, sim.AddEntry(VLANEntry{ID: 20, Membership: 0x0C}))
	entries, err := sim.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint16(20), entries[0].ID, "entries sorted by id")

	assert.Error(t, sim.AddEntry(VLANEntry{ID: 5000}))

	require.NoError(t, sim.SetPortVLAN(registers.Phy2Base, 100))
	pvid, err := sim.ReadRegister(registers.Phy2Base + registers.Control4Offset)
	require.NoError(t, err)
	assert.Equal(t, uint8(100), pvid)
}

func TestSaveAndClearConfiguration(t *testing.T) {
	sim := NewSimulator()
	rom := NewMemoryEEPROM()
	require.NoError(t, sim.WriteRegister(0x30, 0xAB))

	require.NoError(t, SaveConfiguration(sim, rom))
	v, err := rom.ReadRegister(ConfigBaseAddr + 0x30)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), v)
	flag, err := rom.ReadRegister(ConfigFlagAddr)
	require.NoError(t, err)
	assert.NotZero(t, flag&(1<<ConfigSavedBit))

	require.NoError(t, ClearConfiguration(rom))
	v, err = rom.ReadRegister(ConfigBaseAddr + 0x30)
	require.NoError(t, err)
	assert.Zero(t, v)
	flag, err = rom.ReadRegister(ConfigFlagAddr)
	require.NoError(t, err)
	assert.Zero(t, flag&(1<<ConfigSavedBit))
}
