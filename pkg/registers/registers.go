package registers

import "fmt"

// Physical port base addresses.
const (
	Phy1Base uint8 = 0x10
	Phy2Base uint8 = 0x20
	Phy3Base uint8 = 0x30
	Phy4Base uint8 = 0x40
)

// NumPorts is the number of fast-ethernet ports on the switch layer.
const NumPorts = 4

// portBases maps logical port index (f0..f3) to physical base address.
// The board wires them inverted: f0 is physical port 4.
var portBases = [NumPorts]uint8{Phy4Base, Phy3Base, Phy2Base, Phy1Base}

// PortBase returns the base register address for logical port n (0-based).
func PortBase(n int) (uint8, error) {
	if n < 0 || n >= NumPorts {
		return 0, fmt.Errorf("no such port: f%d", n)
	}
	return portBases[n], nil
}

// PortBaseHex returns the base address of logical port n as the "0xNN"
// string bound as a static grammar parameter.
func PortBaseHex(n int) string {
	b, err := PortBase(n)
	if err != nil {
		return "0x00"
	}
	return fmt.Sprintf("%#x", b)
}

// PortName returns the console name of the port with the given base
// address, or an empty string if the address is not a port base.
func PortName(base uint8) string {
	for i, b := range portBases {
		if b == base {
			return fmt.Sprintf("Fast Ethernet %d", i)
		}
	}
	return ""
}

// Per-port register offsets, added to a port base address.
const (
	Control0Offset uint8 = 0x0
	Control1Offset uint8 = 0x1
	Control2Offset uint8 = 0x2
	Control3Offset uint8 = 0x3
	Control4Offset uint8 = 0x4
	Status0Offset  uint8 = 0x9
	LinkMD0Offset  uint8 = 0xA
	LinkMD1Offset  uint8 = 0xB
	Control5Offset uint8 = 0xC
	Control6Offset uint8 = 0xD
	Status1Offset  uint8 = 0xE
	Status2Offset  uint8 = 0xF
)

// Global registers.
const (
	GlobalInfo     uint8 = 0x01
	GlobalControl0 uint8 = 0x02
	GlobalControl1 uint8 = 0x03
	GlobalControl2 uint8 = 0x04
	GlobalControl3 uint8 = 0x05
	GlobalControl9 uint8 = 0x0B

	InterruptStatus uint8 = 0x7C
)

// Indirect access registers (VLAN and MAC tables).
const (
	IndirectAccessControl0 uint8 = 0x6E
	IndirectAccessControl1 uint8 = 0x6F

	IndirectData8 uint8 = 0x70
	IndirectData0 uint8 = 0x78
)

// Hex renders a register address the way static grammar parameters and
// diagnostics spell it.
func Hex(addr uint8) string { return fmt.Sprintf("%#x", addr) }
