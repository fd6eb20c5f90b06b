// Package registers holds the KSZ8895MLUB register map shared by the
// console grammar, the bus descriptor table, and the status renderers.
//
// Logical port numbering is inverted relative to the hardware on this board
// revision: fast-ethernet0 on the console maps to physical port 4. The
// PortBase helpers encapsulate that inversion; nothing else in the tree
// should mention physical ports.
package registers
