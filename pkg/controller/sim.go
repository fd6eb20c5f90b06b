package controller

import (
	"errors"
	"sort"
	"sync"

	"github.com/misl-switch/mislswitch-go/pkg/registers"
)

// Simulator is an in-memory KSZ8895 stand-in. It backs development and tests
// with a plain 256-byte register file; self-clearing diagnostic bits drop as
// soon as they are written, the way the silicon behaves.
type Simulator struct {
	mu   sync.Mutex
	regs [256]uint8

	vlans map[uint16]VLANEntry

	staticMACs  []MACEntry
	dynamicMACs []MACEntry
}

var _ RegisterIO = (*Simulator)(nil)
var _ VLANTable = (*Simulator)(nil)
var _ MACTables = (*Simulator)(nil)

// chip family and start-switch bit reported through the global registers
const (
	simChipID    = 0x95
	simChipID1   = 0x40 // family in high nibble, revision 0
	simStartBit  = 0x01
	selfClearing = 1 << 4 // LinkMD cable diagnostic trigger
)

// NewSimulator returns a simulator with the identity registers seeded and
// the switch started.
func NewSimulator() *Simulator {
	s := &Simulator{vlans: make(map[uint16]VLANEntry)}
	s.regs[0x00] = simChipID
	s.regs[registers.GlobalInfo] = simChipID1 | simStartBit
	for port := 0; port < registers.NumPorts; port++ {
		base, _ := registers.PortBase(port)
		// link up, 100BT-FD autonegotiated
		s.regs[base+registers.Status0Offset] = 0x78
		s.regs[base+registers.Status1Offset] = 0x66
	}
	return s
}

// ReadRegister returns the value at addr.
func (s *Simulator) ReadRegister(addr uint8) (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[addr], nil
}

// WriteRegister stores value at addr. Diagnostic trigger bits self-clear and
// latch a fake cable result so the poll loop terminates.
func (s *Simulator) WriteRegister(addr uint8, value uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isLinkMDTrigger(addr) && value&selfClearing != 0 {
		value &^= selfClearing
		s.regs[addr+1] = 0x00 // LinkMD1: normal cable, zero distance
	}
	s.regs[addr] = value
	return nil
}

func isLinkMDTrigger(addr uint8) bool {
	for port := 0; port < registers.NumPorts; port++ {
		base, _ := registers.PortBase(port)
		if addr == base+registers.LinkMD0Offset {
			return true
		}
	}
	return false
}

// SeedStaticMAC adds a row to the static MAC table readout.
func (s *Simulator) SeedStaticMAC(e MACEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.Static = true
	s.staticMACs = append(s.staticMACs, e)
}

// SeedDynamicMAC adds a row to the dynamic MAC table readout.
func (s *Simulator) SeedDynamicMAC(e MACEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.Static = false
	s.dynamicMACs = append(s.dynamicMACs, e)
}

func (s *Simulator) StaticMACTable() ([]MACEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MACEntry, len(s.staticMACs))
	copy(out, s.staticMACs)
	return out, nil
}

func (s *Simulator) DynamicMACTable() ([]MACEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MACEntry, len(s.dynamicMACs))
	copy(out, s.dynamicMACs)
	return out, nil
}

// EnableFiltering sets the 802.1Q enable bit in global control 3.
func (s *Simulator) EnableFiltering() error {
	return SetBit(s, registers.GlobalControl3, 7)
}

// DisableFiltering clears the 802.1Q enable bit in global control 3.
func (s *Simulator) DisableFiltering() error {
	return ClearBit(s, registers.GlobalControl3, 7)
}

var errBadVLANID = errors.New("vlan id out of range")

// SetPortVLAN writes the port's default VID registers and turns on tag
// insertion for egress.
func (s *Simulator) SetPortVLAN(portBase uint8, vlanID uint16) error {
	if vlanID == 0 || vlanID > 4095 {
		return errBadVLANID
	}
	if err := s.WriteRegister(portBase+registers.Control3Offset, uint8(vlanID>>8)&0x0F); err != nil {
		return err
	}
	if err := s.WriteRegister(portBase+registers.Control4Offset, uint8(vlanID)); err != nil {
		return err
	}
	return SetBit(s, portBase+registers.Control0Offset, 2)
}

// AddEntry inserts or updates a VLAN table row.
func (s *Simulator) AddEntry(entry VLANEntry) error {
	if entry.ID == 0 || entry.ID > 4095 {
		return errBadVLANID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Active = true
	s.vlans[entry.ID] = entry
	return nil
}

// Entries returns all active rows ordered by VLAN ID.
func (s *Simulator) Entries() ([]VLANEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]VLANEntry, 0, len(s.vlans))
	for _, e := range s.vlans {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryEEPROM is an in-memory configuration store.
type MemoryEEPROM struct {
	mu    sync.Mutex
	cells map[uint32]uint8
}

var _ EEPROM = (*MemoryEEPROM)(nil)

func NewMemoryEEPROM() *MemoryEEPROM {
	return &MemoryEEPROM{cells: make(map[uint32]uint8)}
}

func (m *MemoryEEPROM) ReadRegister(addr uint32) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cells[addr], nil
}

func (m *MemoryEEPROM) WriteRegister(addr uint32, value uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[addr] = value
	return nil
}

// Reinitialize drops every stored cell.
func (m *MemoryEEPROM) Reinitialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells = make(map[uint32]uint8)
	return nil
}
