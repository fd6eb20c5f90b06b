package commands

import (
	"github.com/misl-switch/mislswitch-go/pkg/bus"
	"github.com/misl-switch/mislswitch-go/pkg/controller"
	"github.com/misl-switch/mislswitch-go/pkg/params"
	"github.com/misl-switch/mislswitch-go/pkg/registers"
)

// Bus command codes. 0x10 onwards are the per-port quick commands, sixteen
// codes per port.
const (
	busWriteRead  uint8 = 0x00
	busSaveConfig uint8 = 0x01
	busDownload   uint8 = 0x02
	busClear      uint8 = 0x03

	busPortBlock  uint8 = 0x10
	busPortStride uint8 = 0x10
)

const (
	busOK   byte = 0x01
	busFail byte = 0x00
)

// BuildBusTable assembles the bus descriptor table. The same static
// parameter scheme as the console applies, in bytes: port quick commands
// carry {base, offset, bit} and share three handlers.
func (s *Set) BuildBusTable() (*bus.Table, error) {
	descriptors := []bus.Descriptor{
		{
			// custom: register, value, write flag
			Code:        busWriteRead,
			CustomCount: 3,
			ReturnCount: 1,
			Handler:     s.busWriteRead,
		},
		{
			Code:        busSaveConfig,
			ReturnCount: 1,
			Handler:     s.busSaveConfig,
		},
		{
			// the handler streams the whole configuration itself
			Code:        busDownload,
			ReturnCount: 0xFF,
			Handler:     s.busDownload,
		},
		{
			Code:        busClear,
			ReturnCount: 1,
			Handler:     s.busClearConfig,
		},
	}

	for port := 0; port < registers.NumPorts; port++ {
		base := busPortBlock + uint8(port)*busPortStride
		descriptors = append(descriptors, s.portQuickCommands(port, base)...)
	}

	return bus.NewTable(descriptors)
}

// portQuickCommands builds the sixteen single-byte commands of one port.
func (s *Set) portQuickCommands(port int, codeBase uint8) []bus.Descriptor {
	phy, err := registers.PortBase(port)
	if err != nil {
		return nil
	}
	quick := func(code uint8, offset, bit uint8, h bus.Handler) bus.Descriptor {
		return bus.Descriptor{
			Code:         codeBase + code,
			StaticParams: []byte{phy, offset, bit},
			ReturnCount:  1,
			Handler:      h,
		}
	}
	return []bus.Descriptor{
		quick(0x0, registers.Control6Offset, 0x3, s.busClearBit), // port on
		quick(0x1, registers.Control6Offset, 0x3, s.busSetBit),   // port off
		quick(0x2, registers.Control5Offset, 0x5, s.busSetBit),   // full duplex
		quick(0x3, registers.Control5Offset, 0x5, s.busClearBit), // half duplex
		quick(0x4, registers.Control5Offset, 0x6, s.busSetBit),   // 100BASE-TX
		quick(0x5, registers.Control5Offset, 0x6, s.busClearBit), // 10BASE-T
		quick(0x6, registers.Control5Offset, 0x2, s.busSetBit),   // auto-MDIX off
		quick(0x7, registers.Control5Offset, 0x2, s.busClearBit), // auto-MDIX on
		quick(0x8, registers.Control5Offset, 0x1, s.busSetBit),   // force MDI
		quick(0x9, registers.Control5Offset, 0x1, s.busClearBit), // release MDI
		quick(0xA, registers.Control6Offset, 0x5, s.busPulseBit), // restart AN
		quick(0xB, registers.Control2Offset, 0x2, s.busSetBit),   // tx on
		quick(0xC, registers.Control2Offset, 0x2, s.busClearBit), // tx off
		quick(0xD, registers.Control2Offset, 0x1, s.busSetBit),   // rx on
		quick(0xE, registers.Control2Offset, 0x1, s.busClearBit), // rx off
		quick(0xF, registers.Control2Offset, 0x0, s.busSetBit),   // learning off
	}
}

// busWriteRead reads or writes one controller register. Slots: register,
// value, write flag. A read returns the register value; a write returns the
// status byte.
func (s *Set) busWriteRead(p *[params.MaxParams]byte) byte {
	addr, value, write := p[0], p[1], p[2]
	if write != 0 {
		if err := s.Regs.WriteRegister(addr, value); err != nil {
			return busFail
		}
		return busOK
	}
	v, err := s.Regs.ReadRegister(addr)
	if err != nil {
		return busFail
	}
	return v
}

func (s *Set) busSaveConfig(p *[params.MaxParams]byte) byte {
	if err := controller.SaveConfiguration(s.Regs, s.ROM); err != nil {
		return busFail
	}
	return busOK
}

func (s *Set) busClearConfig(p *[params.MaxParams]byte) byte {
	if err := controller.ClearConfiguration(s.ROM); err != nil {
		return busFail
	}
	return busOK
}

// busDownload streams the stored configuration mirror through the
// responder, one byte per cell. Its announced return count (0xFF) tells the
// master a bulk transfer follows.
func (s *Set) busDownload(p *[params.MaxParams]byte) byte {
	for addr := 0; addr < controller.ConfigRegisters; addr++ {
		v, err := s.ROM.ReadRegister(controller.ConfigBaseAddr + uint32(addr))
		if err != nil {
			return busFail
		}
		if err := s.Responder.WriteByte(v); err != nil {
			return busFail
		}
	}
	return busOK
}

func (s *Set) busSetBit(p *[params.MaxParams]byte) byte {
	if err := controller.SetBit(s.Regs, p[0]+p[1], p[2]); err != nil {
		return busFail
	}
	return busOK
}

func (s *Set) busClearBit(p *[params.MaxParams]byte) byte {
	if err := controller.ClearBit(s.Regs, p[0]+p[1], p[2]); err != nil {
		return busFail
	}
	return busOK
}

func (s *Set) busPulseBit(p *[params.MaxParams]byte) byte {
	if err := controller.PulseBit(s.Regs, p[0]+p[1], p[2]); err != nil {
		return busFail
	}
	return busOK
}
