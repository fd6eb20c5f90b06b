package commands

import (
	"fmt"
	"time"

	"github.com/misl-switch/mislswitch-go/pkg/audit"
	"github.com/misl-switch/mislswitch-go/pkg/controller"
	"github.com/misl-switch/mislswitch-go/pkg/params"
	"github.com/misl-switch/mislswitch-go/pkg/registers"
	"github.com/olekukonko/tablewriter"
)

// ReadControllerRegister prints one register value.
func (s *Set) ReadControllerRegister(p *[params.MaxParams]string) bool {
	addr, err := parseByte(p[0])
	if err != nil {
		s.printf("Invalid register address '%s'.", p[0])
		return false
	}
	v, err := s.Regs.ReadRegister(addr)
	if err != nil {
		s.audit(audit.ControllerFault, fmt.Sprintf("read %#x", addr))
		return s.done(err)
	}
	s.audit(audit.ControllerRead, fmt.Sprintf("%#x", addr))
	s.printf("Register %#02x = %#02x", addr, v)
	return true
}

// WriteControllerRegister stores one register value.
func (s *Set) WriteControllerRegister(p *[params.MaxParams]string) bool {
	addr, err := parseByte(p[0])
	if err != nil {
		s.printf("Invalid register address '%s'.", p[0])
		return false
	}
	value, err := parseByte(p[1])
	if err != nil {
		s.printf("Invalid register value '%s'.", p[1])
		return false
	}
	s.task(fmt.Sprintf("Writing %#02x to register %#02x...", value, addr))
	if err := s.Regs.WriteRegister(addr, value); err != nil {
		s.audit(audit.ControllerFault, fmt.Sprintf("write %#x", addr))
		return s.done(err)
	}
	s.audit(audit.ControllerWrite, fmt.Sprintf("%#x=%#x", addr, value))
	return s.done(nil)
}

// SystemStatus renders the global registers through the decode tables.
func (s *Set) SystemStatus(p *[params.MaxParams]string) bool {
	for _, view := range registers.GlobalViews {
		v, err := s.Regs.ReadRegister(view.Offset)
		if err != nil {
			return s.done(err)
		}
		s.printf("%s: %#02x", view.Title, v)
		for _, f := range view.Fields {
			if text := f.Describe(v); text != "" {
				s.printf("  %-28s %s", f.Name, text)
			}
		}
	}
	return true
}

// EEPROMRead prints one EEPROM cell.
func (s *Set) EEPROMRead(p *[params.MaxParams]string) bool {
	addr, err := parseUint16(p[0])
	if err != nil {
		s.printf("Invalid EEPROM address '%s'.", p[0])
		return false
	}
	v, err := s.ROM.ReadRegister(uint32(addr))
	if err != nil {
		s.audit(audit.EEPROMFault, fmt.Sprintf("read %#x", addr))
		return s.done(err)
	}
	s.audit(audit.EEPROMRead, fmt.Sprintf("%#x", addr))
	s.printf("EEPROM %#04x = %#02x", addr, v)
	return true
}

// EEPROMWrite stores one EEPROM cell.
func (s *Set) EEPROMWrite(p *[params.MaxParams]string) bool {
	addr, err := parseUint16(p[0])
	if err != nil {
		s.printf("Invalid EEPROM address '%s'.", p[0])
		return false
	}
	value, err := parseByte(p[1])
	if err != nil {
		s.printf("Invalid EEPROM value '%s'.", p[1])
		return false
	}
	s.task(fmt.Sprintf("Writing %#02x to EEPROM %#04x...", value, addr))
	if err := s.ROM.WriteRegister(uint32(addr), value); err != nil {
		s.audit(audit.EEPROMFault, fmt.Sprintf("write %#x", addr))
		return s.done(err)
	}
	s.audit(audit.EEPROMWrite, fmt.Sprintf("%#x=%#x", addr, value))
	return s.done(nil)
}

// EEPROMReinitialize restores factory contents.
func (s *Set) EEPROMReinitialize(p *[params.MaxParams]string) bool {
	s.task("Reinitializing EEPROM...")
	return s.done(s.ROM.Reinitialize())
}

// ConfigSave mirrors the controller registers into the EEPROM.
func (s *Set) ConfigSave(p *[params.MaxParams]string) bool {
	s.task("Saving Configuration...")
	err := controller.SaveConfiguration(s.Regs, s.ROM)
	if err == nil {
		s.audit(audit.EEPROMWrite, "configuration saved")
	}
	return s.done(err)
}

// ConfigDelete clears the stored configuration.
func (s *Set) ConfigDelete(p *[params.MaxParams]string) bool {
	s.task("Deleting Stored Configuration...")
	err := controller.ClearConfiguration(s.ROM)
	if err == nil {
		s.audit(audit.EEPROMWrite, "configuration cleared")
	}
	return s.done(err)
}

// SystemReset restarts the switch. It must be entered twice in a row; the
// first invocation only arms the latch.
func (s *Set) SystemReset(p *[params.MaxParams]string) bool {
	if !s.resetArmed {
		s.resetArmed = true
		s.printf("WARNING: This will restart the switch and drop all sessions.")
		s.printf("Run 'system reset' again to confirm.")
		return true
	}
	s.resetArmed = false
	s.audit(audit.SystemRestarted, "")
	s.printf("Restarting...")
	return true
}

// BusSend feeds a frame through the local assembler, exercising the whole
// bus path without a master attached, and prints the response bytes the
// dispatcher clocks out.
func (s *Set) BusSend(p *[params.MaxParams]string) bool {
	frame, err := parseFrame(p[0])
	if err != nil {
		s.printf("Invalid frame '%s'. Expected comma-separated bytes.", p[0])
		return false
	}
	s.Responder.Reset()
	s.task(fmt.Sprintf("Sending %d byte frame...", len(frame)))
	if err := s.Assembler.Send(frame); err != nil {
		return s.done(err)
	}
	// the dispatch task runs concurrently; give it a moment to respond
	var resp []byte
	for i := 0; i < 50; i++ {
		if resp = s.Responder.Bytes(); len(resp) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(resp) == 0 {
		s.printf("No response (frame discarded).")
		return s.done(nil)
	}
	s.printf("Announced return count: %#02x", resp[0])
	for _, b := range resp[1:] {
		s.printf("Response byte: %#02x", b)
	}
	return s.done(nil)
}

// BusStatus reports the assembler's health.
func (s *Set) BusStatus(p *[params.MaxParams]string) bool {
	if s.Assembler.Overloaded() {
		s.printf("Bus Slave: OVERLOADED (frame queue stalled)")
		return false
	}
	s.printf("Bus Slave: OK")
	return true
}

// ShowVLANTable lists the active VLAN entries.
func (s *Set) ShowVLANTable(p *[params.MaxParams]string) bool {
	entries, err := s.VLANs.Entries()
	if err != nil {
		return s.done(err)
	}
	table := tablewriter.NewWriter(s.Out)
	table.SetHeader([]string{"VLAN ID", "Membership", "Active"})
	for _, e := range entries {
		table.Append([]string{
			fmt.Sprintf("%d", e.ID),
			fmt.Sprintf("%#02x", e.Membership),
			fmt.Sprintf("%t", e.Active),
		})
	}
	table.Render()
	return true
}

// ShowStaticMACTable lists the static MAC table.
func (s *Set) ShowStaticMACTable(p *[params.MaxParams]string) bool {
	entries, err := s.MACs.StaticMACTable()
	if err != nil {
		return s.done(err)
	}
	return s.renderMACs(entries)
}

// ShowDynamicMACTable lists the learned MAC table.
func (s *Set) ShowDynamicMACTable(p *[params.MaxParams]string) bool {
	entries, err := s.MACs.DynamicMACTable()
	if err != nil {
		return s.done(err)
	}
	return s.renderMACs(entries)
}

func (s *Set) renderMACs(entries []controller.MACEntry) bool {
	table := tablewriter.NewWriter(s.Out)
	table.SetHeader([]string{"MAC Address", "Ports", "Static"})
	for _, e := range entries {
		table.Append([]string{
			fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
				e.Address[0], e.Address[1], e.Address[2],
				e.Address[3], e.Address[4], e.Address[5]),
			fmt.Sprintf("%#02x", e.Ports),
			fmt.Sprintf("%t", e.Static),
		})
	}
	table.Render()
	return true
}
