package registers

// ValueName pairs one masked register value with its description.
type ValueName struct {
	Value uint8
	Text  string
}

// Field is one named setting inside a register, selected by a mask.
type Field struct {
	Mask   uint8
	Name   string
	Values []ValueName
}

// Describe returns the description matching the masked register value, or
// an empty string when the value is not mapped.
func (f Field) Describe(reg uint8) string {
	masked := reg & f.Mask
	for _, v := range f.Values {
		if v.Value == masked {
			return v.Text
		}
	}
	return ""
}

// View describes how to render one register for the operator.
type View struct {
	Offset uint8
	Title  string
	Fields []Field
}

// bools builds the common true/false value pair for a single-bit field.
func bools(mask uint8, whenSet, whenClear string) []ValueName {
	return []ValueName{{Value: mask, Text: whenSet}, {Value: 0x00, Text: whenClear}}
}

// GlobalViews drives the "system status" rendering.
var GlobalViews = []View{
	{Offset: GlobalInfo, Title: "Global Switch Information", Fields: []Field{
		{Mask: 0xF0, Name: "Chip ID", Values: []ValueName{
			{Value: 0x40, Text: "KSZ8895MQX/FQX/ML"},
			{Value: 0x60, Text: "KSZ8895RQX"},
		}},
		{Mask: 0x01, Name: "Switch State", Values: []ValueName{
			{Value: 0x01, Text: "Started"},
			{Value: 0x00, Text: "Stopped"},
		}},
	}},
	{Offset: GlobalControl1, Title: "Global Control 1", Fields: []Field{
		{Mask: 0x80, Name: "Pass All Frames", Values: bools(0x80, "True", "False")},
		{Mask: 0x40, Name: "2K Byte Support", Values: bools(0x40, "True", "False")},
		{Mask: 0x20, Name: "TX Flow Control Disable", Values: bools(0x20, "True", "False")},
		{Mask: 0x10, Name: "RX Flow Control Disable", Values: bools(0x10, "True", "False")},
		{Mask: 0x08, Name: "Frame Length Field Check", Values: bools(0x08, "True", "False")},
		{Mask: 0x02, Name: "Fast Aging", Values: bools(0x02, "True", "False")},
		{Mask: 0x01, Name: "Aggressive Back-Off", Values: bools(0x01, "True", "False")},
	}},
	{Offset: GlobalControl3, Title: "Global Control 3", Fields: []Field{
		{Mask: 0x80, Name: "802.1Q VLANs Enabled", Values: bools(0x80, "True", "False")},
		{Mask: 0x01, Name: "Sniff Mode Select", Values: bools(0x01, "True", "False")},
	}},
	{Offset: GlobalControl9, Title: "Global Control 9", Fields: []Field{
		{Mask: 0x02, Name: "LED Mode", Values: []ValueName{
			{Value: 0x02, Text: "Mode 1"},
			{Value: 0x00, Text: "Mode 0"},
		}},
		{Mask: 0x01, Name: "SPI Read Trigger", Values: []ValueName{
			{Value: 0x01, Text: "Rising Edge"},
			{Value: 0x00, Text: "Falling Edge"},
		}},
	}},
	{Offset: 0x0C, Title: "Global Control 10", Fields: []Field{
		{Mask: 0x30, Name: "CPU Interface Speed", Values: []ValueName{
			{Value: 0x00, Text: "41.67 MHz"},
			{Value: 0x10, Text: "83.33 MHz"},
			{Value: 0x20, Text: "125 MHz"},
		}},
	}},
	{Offset: 0x0E, Title: "Power Management", Fields: []Field{
		{Mask: 0x18, Name: "Power Management Mode", Values: []ValueName{
			{Value: 0x00, Text: "Normal Mode"},
			{Value: 0x08, Text: "Energy Detection Mode"},
			{Value: 0x10, Text: "Soft Power Down Mode"},
			{Value: 0x18, Text: "Power Saving Mode"},
		}},
	}},
}

// PortViews drives the "port fN status" rendering. Offsets are relative to
// the port base address.
var PortViews = []View{
	{Offset: Control0Offset, Title: "Port Control 0", Fields: []Field{
		{Mask: 0x80, Name: "Broadcast Storm Protection", Values: bools(0x80, "True", "False")},
	}},
	{Offset: Control1Offset, Title: "Port Control 1", Fields: []Field{
		{Mask: 0x80, Name: "Sniffer Port", Values: bools(0x80, "True", "False")},
		{Mask: 0x40, Name: "Sniffing RX", Values: bools(0x40, "True", "False")},
		{Mask: 0x20, Name: "Sniffing TX", Values: bools(0x20, "True", "False")},
	}},
	{Offset: Control2Offset, Title: "Port Control 2", Fields: []Field{
		{Mask: 0x02, Name: "Transmit Enabled", Values: bools(0x02, "True", "False")},
		{Mask: 0x01, Name: "Receive Enabled", Values: bools(0x01, "True", "False")},
	}},
	{Offset: Status0Offset, Title: "Port Status 0", Fields: []Field{
		{Mask: 0x80, Name: "MDI/MDI-X Mode", Values: []ValueName{
			{Value: 0x80, Text: "HP Auto MDI/MDI-X"},
			{Value: 0x00, Text: "Micrel Auto MDI/MDI-X"},
		}},
		{Mask: 0x20, Name: "Polarity", Values: []ValueName{
			{Value: 0x20, Text: "Reversed"},
			{Value: 0x00, Text: "Not Reversed"},
		}},
		{Mask: 0x10, Name: "TX Flow Control", Values: bools(0x10, "Active", "Disabled")},
		{Mask: 0x08, Name: "RX Flow Control", Values: bools(0x08, "Active", "Disabled")},
		{Mask: 0x04, Name: "Port Speed", Values: []ValueName{
			{Value: 0x04, Text: "100 Mbps"},
			{Value: 0x00, Text: "10 Mbps"},
		}},
		{Mask: 0x02, Name: "Port Duplex Mode", Values: []ValueName{
			{Value: 0x02, Text: "Full"},
			{Value: 0x00, Text: "Half"},
		}},
	}},
	{Offset: Control5Offset, Title: "Port Control 5", Fields: []Field{
		{Mask: 0x80, Name: "Auto-Negotiation", Values: []ValueName{
			{Value: 0x80, Text: "Disabled"},
			{Value: 0x00, Text: "Enabled"},
		}},
		{Mask: 0x40, Name: "Forced Speed (AN must be Disabled)", Values: []ValueName{
			{Value: 0x40, Text: "100 Mbps"},
			{Value: 0x00, Text: "10 Mbps"},
		}},
		{Mask: 0x20, Name: "Forced Duplex (AN must be Disabled)", Values: []ValueName{
			{Value: 0x20, Text: "Full"},
			{Value: 0x00, Text: "Half"},
		}},
	}},
	{Offset: Control6Offset, Title: "Port Control 6", Fields: []Field{
		{Mask: 0x80, Name: "LEDs Disabled", Values: bools(0x80, "True", "False")},
		{Mask: 0x08, Name: "Port State", Values: []ValueName{
			{Value: 0x08, Text: "Administratively Disabled"},
			{Value: 0x00, Text: "ON"},
		}},
		{Mask: 0x04, Name: "Auto MDI/MDI-X", Values: []ValueName{
			{Value: 0x04, Text: "Disabled"},
			{Value: 0x00, Text: "Enabled"},
		}},
	}},
	{Offset: Status1Offset, Title: "Port Status 1", Fields: []Field{
		{Mask: 0x80, Name: "MDIX Status", Values: []ValueName{
			{Value: 0x80, Text: "Port using MDI"},
			{Value: 0x00, Text: "Port using MDI-X"},
		}},
		{Mask: 0x40, Name: "Auto-Negotiation State", Values: []ValueName{
			{Value: 0x40, Text: "Done"},
			{Value: 0x00, Text: "In-Progress"},
		}},
		{Mask: 0x20, Name: "Link Status", Values: []ValueName{
			{Value: 0x20, Text: "Connected"},
			{Value: 0x00, Text: "Disconnected"},
		}},
	}},
}
