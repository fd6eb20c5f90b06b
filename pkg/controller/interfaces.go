package controller

import (
	"errors"
	"fmt"
)

// ErrVerifyFailed indicates a read-back after write did not return the value
// written within the retry budget.
var ErrVerifyFailed = errors.New("register verify failed")

// verifyRetries bounds the read-back loop after a bit operation.
const verifyRetries = 10

// RegisterIO is 8-bit register access on the switch controller.
type RegisterIO interface {
	// ReadRegister returns the value at addr.
	ReadRegister(addr uint8) (uint8, error)

	// WriteRegister stores value at addr.
	WriteRegister(addr uint8, value uint8) error
}

// SetBit performs a read-modify-write driving bit high at addr, then
// verifies the write by reading back.
func SetBit(io RegisterIO, addr uint8, bit uint8) error {
	v, err := io.ReadRegister(addr)
	if err != nil {
		return fmt.Errorf("read %#x: %w", addr, err)
	}
	v |= 1 << bit
	return writeVerified(io, addr, v)
}

// ClearBit performs a read-modify-write driving bit low at addr, then
// verifies the write by reading back.
func ClearBit(io RegisterIO, addr uint8, bit uint8) error {
	v, err := io.ReadRegister(addr)
	if err != nil {
		return fmt.Errorf("read %#x: %w", addr, err)
	}
	v &^= 1 << bit
	return writeVerified(io, addr, v)
}

// PulseBit drives a self-clearing bit high and waits for the hardware to
// drop it again, e.g. restarting auto-negotiation.
func PulseBit(io RegisterIO, addr uint8, bit uint8) error {
	v, err := io.ReadRegister(addr)
	if err != nil {
		return fmt.Errorf("read %#x: %w", addr, err)
	}
	if err := io.WriteRegister(addr, v|1<<bit); err != nil {
		return fmt.Errorf("write %#x: %w", addr, err)
	}
	want := v &^ (1 << bit)
	for i := 0; i < verifyRetries; i++ {
		got, err := io.ReadRegister(addr)
		if err != nil {
			return fmt.Errorf("read %#x: %w", addr, err)
		}
		if got == want {
			return nil
		}
	}
	return fmt.Errorf("%w: %#x bit %d did not self-clear", ErrVerifyFailed, addr, bit)
}

func writeVerified(io RegisterIO, addr uint8, value uint8) error {
	if err := io.WriteRegister(addr, value); err != nil {
		return fmt.Errorf("write %#x: %w", addr, err)
	}
	for i := 0; i < verifyRetries; i++ {
		got, err := io.ReadRegister(addr)
		if err != nil {
			return fmt.Errorf("read %#x: %w", addr, err)
		}
		if got == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %#x", ErrVerifyFailed, addr)
}

// VLANEntry is one row of the VLAN table.
type VLANEntry struct {
	ID         uint16
	Membership uint8 // bit per port, bit 4 = host port
	Active     bool
}

// VLANTable is the 802.1Q table collaborator. The hardware reaches it through
// indirect registers; that packing is the collaborator's business, not the
// dispatch core's.
type VLANTable interface {
	// EnableFiltering globally enables 802.1Q VLAN filtering.
	EnableFiltering() error

	// DisableFiltering globally disables 802.1Q VLAN filtering.
	DisableFiltering() error

	// SetPortVLAN assigns the port's default VLAN and tag insertion.
	SetPortVLAN(portBase uint8, vlanID uint16) error

	// AddEntry inserts or updates a VLAN table row.
	AddEntry(entry VLANEntry) error

	// Entries returns all active rows.
	Entries() ([]VLANEntry, error)
}

// MACEntry is one row of a MAC address table.
type MACEntry struct {
	Address [6]byte
	Ports   uint8
	Static  bool
}

// MACTables exposes the static and dynamic MAC tables for the show commands.
type MACTables interface {
	StaticMACTable() ([]MACEntry, error)
	DynamicMACTable() ([]MACEntry, error)
}

// EEPROM is the configuration store collaborator. Addresses 0x100-0x1FF
// mirror the controller's register file when a configuration is saved.
type EEPROM interface {
	// ReadRegister returns the byte at addr.
	ReadRegister(addr uint32) (uint8, error)

	// WriteRegister stores value at addr.
	WriteRegister(addr uint32, value uint8) error

	// Reinitialize resets the EEPROM to factory contents.
	Reinitialize() error
}

// Config flag byte location and bits inside the EEPROM global settings
// sector.
const (
	ConfigFlagAddr  uint32 = 0x1E
	ConfigSavedBit  uint8  = 0x06
	ConfigBaseAddr  uint32 = 0x100
	ConfigRegisters        = 0xFF
)

// SaveConfiguration copies controller registers 0x00..0xFE into the EEPROM
// mirror and sets the saved flag.
func SaveConfiguration(regs RegisterIO, rom EEPROM) error {
	for addr := 0; addr < ConfigRegisters; addr++ {
		v, err := regs.ReadRegister(uint8(addr))
		if err != nil {
			return fmt.Errorf("read controller %#x: %w", addr, err)
		}
		if err := rom.WriteRegister(ConfigBaseAddr+uint32(addr), v); err != nil {
			return fmt.Errorf("write eeprom %#x: %w", ConfigBaseAddr+uint32(addr), err)
		}
	}
	flag, err := rom.ReadRegister(ConfigFlagAddr)
	if err != nil {
		return err
	}
	return rom.WriteRegister(ConfigFlagAddr, flag|1<<ConfigSavedBit)
}

// ClearConfiguration zeroes the EEPROM mirror and drops the saved flag.
func ClearConfiguration(rom EEPROM) error {
	for addr := 0; addr < ConfigRegisters; addr++ {
		if err := rom.WriteRegister(ConfigBaseAddr+uint32(addr), 0x00); err != nil {
			return fmt.Errorf("write eeprom %#x: %w", ConfigBaseAddr+uint32(addr), err)
		}
	}
	flag, err := rom.ReadRegister(ConfigFlagAddr)
	if err != nil {
		return err
	}
	return rom.WriteRegister(ConfigFlagAddr, flag&^(1<<ConfigSavedBit))
}
