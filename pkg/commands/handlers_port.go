package commands

import (
	"fmt"

	"github.com/misl-switch/mislswitch-go/pkg/controller"
	"github.com/misl-switch/mislswitch-go/pkg/params"
	"github.com/misl-switch/mislswitch-go/pkg/registers"
)

// bitTarget decodes the shared static parameter scheme: slot 0 carries the
// register base contributed by the port selector, slots 1 and 2 the offset
// and bit contributed by the option node.
func bitTarget(p *[params.MaxParams]string) (addr uint8, bit uint8, err error) {
	base, err := parseByte(p[0])
	if err != nil {
		return 0, 0, err
	}
	offset, err := parseByte(p[1])
	if err != nil {
		return 0, 0, err
	}
	bit, err = parseByte(p[2])
	if err != nil {
		return 0, 0, err
	}
	return base + offset, bit, nil
}

// SetRegisterBit drives the addressed bit high. Slot 3 is the progress
// message the terminal node contributed.
func (s *Set) SetRegisterBit(p *[params.MaxParams]string) bool {
	s.task(p[3])
	addr, bit, err := bitTarget(p)
	if err == nil {
		err = controller.SetBit(s.Regs, addr, bit)
	}
	return s.done(err)
}

// ClearRegisterBit drives the addressed bit low.
func (s *Set) ClearRegisterBit(p *[params.MaxParams]string) bool {
	s.task(p[3])
	addr, bit, err := bitTarget(p)
	if err == nil {
		err = controller.ClearBit(s.Regs, addr, bit)
	}
	return s.done(err)
}

// PulseRegisterBit drives a self-clearing bit and waits for it to drop.
func (s *Set) PulseRegisterBit(p *[params.MaxParams]string) bool {
	s.task(p[3])
	addr, bit, err := bitTarget(p)
	if err == nil {
		err = controller.PulseBit(s.Regs, addr, bit)
	}
	return s.done(err)
}

// PortStatus renders the port's status registers through the decode tables.
func (s *Set) PortStatus(p *[params.MaxParams]string) bool {
	base, err := parseByte(p[0])
	if err != nil {
		return s.done(err)
	}
	s.printf("%s (base %#x)", registers.PortName(base), base)
	for _, view := range registers.PortViews {
		v, err := s.Regs.ReadRegister(base + view.Offset)
		if err != nil {
			return s.done(err)
		}
		s.printf("  %s: %#02x", view.Title, v)
		for _, f := range view.Fields {
			if text := f.Describe(v); text != "" {
				s.printf("    %-28s %s", f.Name, text)
			}
		}
	}
	return true
}

// PortVLAN assigns the port's default VLAN.
func (s *Set) PortVLAN(p *[params.MaxParams]string) bool {
	base, err := parseByte(p[0])
	if err != nil {
		return s.done(err)
	}
	id, err := parseVLANID(p[1])
	if err != nil {
		s.printf("Invalid VLAN ID '%s'. Expected 1-4095.", p[1])
		return false
	}
	s.task(fmt.Sprintf("Assigning VLAN %d to %s...", id, registers.PortName(base)))
	return s.done(s.VLANs.SetPortVLAN(base, id))
}

// CableDiagnostics runs the LinkMD sequence: force the PHY out of
// auto-negotiation and auto-MDIX, trigger the self-clearing diagnostic bit,
// then read the fault condition and restore the control register.
func (s *Set) CableDiagnostics(p *[params.MaxParams]string) bool {
	base, err := parseByte(p[0])
	if err != nil {
		return s.done(err)
	}
	s.task("Running Cable Diagnostics...")

	saved, err := s.Regs.ReadRegister(base + registers.Control5Offset)
	if err != nil {
		return s.done(err)
	}
	restore := func() {
		s.Regs.WriteRegister(base+registers.Control5Offset, saved)
	}
	// bit 7 disables auto-negotiation, bit 2 disables auto-MDIX
	if err := s.Regs.WriteRegister(base+registers.Control5Offset, saved|0x84); err != nil {
		restore()
		return s.done(err)
	}
	if err := controller.PulseBit(s.Regs, base+registers.LinkMD0Offset, 4); err != nil {
		restore()
		return s.done(err)
	}
	md0, err := s.Regs.ReadRegister(base + registers.LinkMD0Offset)
	if err != nil {
		restore()
		return s.done(err)
	}
	md1, err := s.Regs.ReadRegister(base + registers.LinkMD1Offset)
	if err != nil {
		restore()
		return s.done(err)
	}
	restore()

	switch md0 & 0x60 {
	case 0x00:
		s.printf("Cable Condition: Normal")
	case 0x20:
		s.printf("Cable Condition: Open")
		s.printf("Distance to fault: ~%d m", faultDistance(md0, md1))
	case 0x40:
		s.printf("Cable Condition: Short")
		s.printf("Distance to fault: ~%d m", faultDistance(md0, md1))
	default:
		s.printf("Cable Condition: Test Failed")
	}
	return s.done(nil)
}

// faultDistance converts the 9-bit LinkMD counter to approximate meters.
func faultDistance(md0, md1 uint8) int {
	raw := int(md0&0x01)<<8 | int(md1)
	return raw * 4 / 10
}

func parseVLANID(tok string) (uint16, error) {
	v, err := parseUint16(tok)
	if err != nil || v == 0 || v > 4095 {
		return 0, fmt.Errorf("vlan id %q out of range", tok)
	}
	return v, nil
}
