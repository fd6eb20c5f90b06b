package commands

import (
	"fmt"

	"github.com/misl-switch/mislswitch-go/pkg/grammar"
	"github.com/misl-switch/mislswitch-go/pkg/perm"
	"github.com/misl-switch/mislswitch-go/pkg/registers"
)

// BuildTree assembles the full console grammar and validates it. The static
// parameter scheme runs through the whole tree: port selectors contribute
// the register base, option nodes the offset and bit, terminal nodes the
// progress message, so one small set of handlers serves every toggle.
func (s *Set) BuildTree() ([]grammar.Node, error) {
	root := []grammar.Node{
		{Text: "admin", Help: "User accounts and event logging.", Children: s.adminTable()},
		{Text: "port", Help: "Configure the fast-ethernet ports.", Children: s.portTable()},
		{Text: "controller", Help: "Raw switch controller register access.", Children: s.controllerTable()},
		{Text: "system", Help: "System level configuration and maintenance.", Children: s.systemTable()},
		{Text: "config", Help: "Persist or delete the running configuration.", Children: s.configTable()},
		{Text: "logout", Help: "End this console session.", Terminal: true, Handler: s.Logout},
	}
	if err := grammar.Validate(root); err != nil {
		return nil, fmt.Errorf("command tree: %w", err)
	}
	return root, nil
}

// featureToggle is the shared enable/disable pair: enable sets the bit the
// parent option node addressed, disable clears it.
func (s *Set) featureToggle(level perm.Level) []grammar.Node {
	return []grammar.Node{
		{
			Text: "enable", Help: "Enable this feature.",
			Terminal: true, Permission: level,
			ParamsRequired: 1, StaticParams: []string{"Enabling Feature..."},
			Handler: s.SetRegisterBit,
		},
		{
			Text: "disable", Help: "Disable this feature.",
			Terminal: true, Permission: level,
			ParamsRequired: 1, StaticParams: []string{"Disabling Feature..."},
			Handler: s.ClearRegisterBit,
		},
	}
}

// invertedToggle serves active-low controls, where the hardware bit disables
// the feature.
func (s *Set) invertedToggle(level perm.Level) []grammar.Node {
	return []grammar.Node{
		{
			Text: "enable", Help: "Enable this feature.",
			Terminal: true, Permission: level,
			ParamsRequired: 1, StaticParams: []string{"Enabling Feature..."},
			Handler: s.ClearRegisterBit,
		},
		{
			Text: "disable", Help: "Disable this feature.",
			Terminal: true, Permission: level,
			ParamsRequired: 1, StaticParams: []string{"Disabling Feature..."},
			Handler: s.SetRegisterBit,
		},
	}
}

// option builds a routing node carrying a register offset and bit. The port
// selector above it has already contributed the base address.
func option(text, help string, offset, bit uint8, children []grammar.Node) grammar.Node {
	return grammar.Node{
		Text: text, Help: help,
		ParamsRequired: 2,
		StaticParams:   []string{registers.Hex(offset), registers.Hex(bit)},
		Children:       children,
	}
}

// globalOption targets a global register. No selector contributes a base,
// so the node supplies a zero base itself to keep the handler contract.
func globalOption(text, help string, reg, bit uint8, children []grammar.Node) grammar.Node {
	return grammar.Node{
		Text: text, Help: help,
		ParamsRequired: 3,
		StaticParams:   []string{"0x00", registers.Hex(reg), registers.Hex(bit)},
		Children:       children,
	}
}

func (s *Set) portTable() []grammar.Node {
	table := make([]grammar.Node, 0, registers.NumPorts)
	for n := 0; n < registers.NumPorts; n++ {
		table = append(table, grammar.Node{
			Text: fmt.Sprintf("f%d", n),
			Help: fmt.Sprintf("Fast Ethernet %d.", n),
			ParamsRequired: 1,
			StaticParams:   []string{registers.PortBaseHex(n)},
			Children:       s.portOptions(),
		})
	}
	return table
}

func (s *Set) portOptions() []grammar.Node {
	return []grammar.Node{
		{
			Text: "status", Help: "Show link, speed and configuration.",
			Terminal: true, Handler: s.PortStatus,
		},
		{
			Text: "enable", Help: "Power the port up.",
			Terminal: true, Permission: perm.ModifyPorts,
			ParamsRequired: 3,
			StaticParams:   []string{registers.Hex(registers.Control6Offset), "0x3", "Enabling Port..."},
			Handler:        s.ClearRegisterBit,
		},
		{
			Text: "disable", Help: "Power the port down.",
			Terminal: true, Permission: perm.ModifyPorts,
			ParamsRequired: 3,
			StaticParams:   []string{registers.Hex(registers.Control6Offset), "0x3", "Disabling Port..."},
			Handler:        s.SetRegisterBit,
		},
		option("toggle-tx", "Transmitter control.",
			registers.Control2Offset, 0x2, s.featureToggle(perm.ModifyPorts)),
		option("toggle-rx", "Receiver control.",
			registers.Control2Offset, 0x1, s.featureToggle(perm.ModifyPorts)),
		option("learning", "MAC address learning.",
			registers.Control2Offset, 0x0, s.invertedToggle(perm.ModifyPorts)),
		option("broadcast-storm", "Broadcast storm protection.",
			registers.Control0Offset, 0x7, s.featureToggle(perm.ModifyPorts)),
		{
			Text: "sniffing", Help: "Port mirroring roles.",
			Children: []grammar.Node{
				option("monitor", "Use this port as the sniffer.",
					registers.Control1Offset, 0x7, s.featureToggle(perm.ModifySystem)),
				option("monitored-tx", "Mirror transmitted frames.",
					registers.Control1Offset, 0x5, s.featureToggle(perm.ModifySystem)),
				option("monitored-rx", "Mirror received frames.",
					registers.Control1Offset, 0x6, s.featureToggle(perm.ModifySystem)),
			},
		},
		{
			Text: "duplex", Help: "Force the duplex mode.",
			Children: []grammar.Node{
				{
					Text: "full", Help: "Force full duplex.",
					Terminal: true, Permission: perm.ModifyPorts,
					ParamsRequired: 3,
					StaticParams:   []string{registers.Hex(registers.Control5Offset), "0x5", "Forcing Full Duplex..."},
					Handler:        s.SetRegisterBit,
				},
				{
					Text: "half", Help: "Force half duplex.",
					Terminal: true, Permission: perm.ModifyPorts,
					ParamsRequired: 3,
					StaticParams:   []string{registers.Hex(registers.Control5Offset), "0x5", "Forcing Half Duplex..."},
					Handler:        s.ClearRegisterBit,
				},
			},
		},
		{
			Text: "speed", Help: "Force the link speed.",
			Children: []grammar.Node{
				{
					Text: "100", Help: "Force 100BASE-TX.",
					Terminal: true, Permission: perm.ModifyPorts,
					ParamsRequired: 3,
					StaticParams:   []string{registers.Hex(registers.Control5Offset), "0x6", "Forcing 100BASE-TX..."},
					Handler:        s.SetRegisterBit,
				},
				{
					Text: "10", Help: "Force 10BASE-T.",
					Terminal: true, Permission: perm.ModifyPorts,
					ParamsRequired: 3,
					StaticParams:   []string{registers.Hex(registers.Control5Offset), "0x6", "Forcing 10BASE-T..."},
					Handler:        s.ClearRegisterBit,
				},
			},
		},
		{
			Text: "auto-negotiation", Help: "Auto-negotiation control.",
			Children: []grammar.Node{
				option("toggle", "Enable or disable auto-negotiation.",
					registers.Control5Offset, 0x7, s.invertedToggle(perm.ModifyPorts)),
				{
					Text: "restart", Help: "Restart the negotiation.",
					Terminal: true, Permission: perm.ModifyPorts,
					ParamsRequired: 3,
					StaticParams:   []string{registers.Hex(registers.Control6Offset), "0x5", "Restarting Auto-Negotiation..."},
					Handler:        s.PulseRegisterBit,
				},
			},
		},
		option("auto-mdix", "Automatic crossover detection.",
			registers.Control5Offset, 0x2, s.invertedToggle(perm.ModifyPorts)),
		option("force-mdi", "Force MDI wiring.",
			registers.Control5Offset, 0x1, s.featureToggle(perm.ModifyPorts)),
		{
			Text: "diagnostics", Help: "Run cable diagnostics (LinkMD).",
			Terminal: true, Permission: perm.ModifyPorts,
			Handler: s.CableDiagnostics,
		},
		{
			Text: "vlan", Help: "Default VLAN assignment.",
			Children: []grammar.Node{
				{
					Text: "<vlan-id [1-4095]>", Help: "VLAN to assign.",
					UserSupplied: true, ParamsRequired: 1,
					Terminal: true, Permission: perm.ModifyPorts,
					Handler: s.PortVLAN,
				},
			},
		},
	}
}

func (s *Set) controllerTable() []grammar.Node {
	return []grammar.Node{
		{
			Text: "read-reg", Help: "Read a controller register.",
			Children: []grammar.Node{
				{
					Text: "<register [0x00-0xFF]>", Help: "Register address.",
					UserSupplied: true, ParamsRequired: 1,
					Terminal: true, Handler: s.ReadControllerRegister,
				},
			},
		},
		{
			Text: "write-reg", Help: "Write a controller register.",
			Children: []grammar.Node{
				{
					Text: "<register [0x00-0xFF]>", Help: "Register address.",
					UserSupplied: true, ParamsRequired: 1,
					Children: []grammar.Node{
						{
							Text: "<value [0x00-0xFF]>", Help: "Value to store.",
							UserSupplied: true, ParamsRequired: 1,
							Terminal: true, Permission: perm.ModifySystem,
							Handler: s.WriteControllerRegister,
						},
					},
				},
			},
		},
	}
}

func (s *Set) systemTable() []grammar.Node {
	return []grammar.Node{
		{
			Text: "status", Help: "Show the global switch status.",
			Terminal: true, Handler: s.SystemStatus,
		},
		{
			Text: "eeprom", Help: "Configuration EEPROM access.",
			Children: []grammar.Node{
				{
					Text: "read", Help: "Read an EEPROM cell.",
					Children: []grammar.Node{
						{
							Text: "<address [0x000-0x1FF]>", Help: "Cell address.",
							UserSupplied: true, ParamsRequired: 1,
							Terminal: true, Permission: perm.ModifySystem,
							Handler: s.EEPROMRead,
						},
					},
				},
				{
					Text: "write", Help: "Write an EEPROM cell.",
					Children: []grammar.Node{
						{
							Text: "<address [0x000-0x1FF]>", Help: "Cell address.",
							UserSupplied: true, ParamsRequired: 1,
							Children: []grammar.Node{
								{
									Text: "<value [0x00-0xFF]>", Help: "Value to store.",
									UserSupplied: true, ParamsRequired: 1,
									Terminal: true, Permission: perm.ModifySystem,
									Handler: s.EEPROMWrite,
								},
							},
						},
					},
				},
				{
					Text: "reinitialize", Help: "Restore factory contents.",
					Terminal: true, Permission: perm.Administrator,
					Handler: s.EEPROMReinitialize,
				},
			},
		},
		{
			Text: "i2c", Help: "Management bus slave.",
			Children: []grammar.Node{
				{
					Text: "send-command", Help: "Loop a frame through the bus slave.",
					Children: []grammar.Node{
						{
							Text: "<frame [aa,bb,...]>", Help: "Comma-separated frame bytes.",
							UserSupplied: true, ParamsRequired: 1,
							Terminal: true, Permission: perm.ModifySystem,
							Handler: s.BusSend,
						},
					},
				},
				{
					Text: "status", Help: "Show bus slave health.",
					Terminal: true, Handler: s.BusStatus,
				},
			},
		},
		globalOption("rapid-link-aging", "Fast MAC aging on link change.",
			registers.GlobalControl0, 0x0, s.featureToggle(perm.ModifySystem)),
		globalOption("large-packets", "Accept frames up to 2K bytes.",
			registers.GlobalControl1, 0x6, s.featureToggle(perm.ModifySystem)),
		globalOption("power-saving", "PHY power saving.",
			registers.GlobalControl9, 0x3, s.featureToggle(perm.ModifySystem)),
		{
			Text: "led-mode", Help: "Select the port LED mode.",
			Children: []grammar.Node{
				{
					Text: "mode-0", Help: "Link/activity and speed.",
					Terminal: true, Permission: perm.ModifySystem,
					ParamsRequired: 4,
					StaticParams:   []string{"0x00", registers.Hex(registers.GlobalControl9), "0x1", "Selecting LED Mode 0..."},
					Handler:        s.ClearRegisterBit,
				},
				{
					Text: "mode-1", Help: "Link and activity.",
					Terminal: true, Permission: perm.ModifySystem,
					ParamsRequired: 4,
					StaticParams:   []string{"0x00", registers.Hex(registers.GlobalControl9), "0x1", "Selecting LED Mode 1..."},
					Handler:        s.SetRegisterBit,
				},
			},
		},
		{
			Text: "show", Help: "Inspect the switch tables.",
			Children: []grammar.Node{
				{
					Text: "vlan-table", Help: "List the VLAN table.",
					Terminal: true, Handler: s.ShowVLANTable,
				},
				{
					Text: "static-mac-table", Help: "List the static MAC table.",
					Terminal: true, Handler: s.ShowStaticMACTable,
				},
				{
					Text: "dynamic-mac-table", Help: "List the learned MAC table.",
					Terminal: true, Handler: s.ShowDynamicMACTable,
				},
			},
		},
		{
			Text: "reset", Help: "Restart the switch (asks to confirm).",
			Terminal: true, Permission: perm.Administrator,
			Handler: s.SystemReset,
		},
	}
}

func (s *Set) configTable() []grammar.Node {
	return []grammar.Node{
		{
			Text: "save", Help: "Save the running configuration to EEPROM.",
			Terminal: true, Permission: perm.ModifySystem,
			Handler: s.ConfigSave,
		},
		{
			Text: "delete", Help: "Delete the stored configuration.",
			Terminal: true, Permission: perm.Administrator,
			Handler: s.ConfigDelete,
		},
	}
}

func (s *Set) adminTable() []grammar.Node {
	return []grammar.Node{
		{
			Text: "users", Help: "Manage console accounts.",
			Children: []grammar.Node{
				{
					Text: "list", Help: "List all accounts.",
					Terminal: true, Permission: perm.Administrator,
					Handler: s.ListUsers,
				},
				{
					Text: "add", Help: "Create an account.",
					Children: []grammar.Node{
						{
							Text: "<username>", Help: "Login name.",
							UserSupplied: true, ParamsRequired: 1,
							Children: []grammar.Node{
								{
									Text: "<password>", Help: "Initial password.",
									UserSupplied: true, ParamsRequired: 1,
									Children: []grammar.Node{
										{
											Text: "<permission>", Help: "read-only, modify-ports, modify-system or administrator.",
											UserSupplied: true, ParamsRequired: 1,
											Terminal: true, Permission: perm.Administrator,
											Handler: s.AddUser,
										},
									},
								},
							},
						},
					},
				},
				{
					Text: "delete", Help: "Remove an account.",
					Children: []grammar.Node{
						{
							Text: "<username>", Help: "Account to remove.",
							UserSupplied: true, ParamsRequired: 1,
							Terminal: true, Permission: perm.Administrator,
							Handler: s.DeleteUser,
						},
					},
				},
			},
		},
		{
			Text: "events", Help: "Audit event logging.",
			Children: []grammar.Node{
				{
					Text: "status", Help: "Show per-event logging state.",
					Terminal: true, Handler: s.EventsStatus,
				},
				{
					Text: "manage", Help: "Enable or disable one event code.",
					Children: []grammar.Node{
						{
							Text: "<event-code>", Help: "Numeric event code.",
							UserSupplied: true, ParamsRequired: 1,
							Children: []grammar.Node{
								{
									Text: "enable", Help: "Log this event.",
									Terminal: true, Permission: perm.Administrator,
									ParamsRequired: 1, StaticParams: []string{"enable"},
									Handler: s.ManageEvent,
								},
								{
									Text: "disable", Help: "Ignore this event.",
									Terminal: true, Permission: perm.Administrator,
									ParamsRequired: 1, StaticParams: []string{"disable"},
									Handler: s.ManageEvent,
								},
							},
						},
					},
				},
				{
					Text: "list", Help: "Dump the recorded events.",
					Terminal: true, Handler: s.ListEvents,
				},
				{
					Text: "clear", Help: "Clear the recorded events.",
					Terminal: true, Permission: perm.Administrator,
					Handler: s.ClearEvents,
				},
			},
		},
	}
}
