// Package packet defines the value types that flow through the fabric:
// addresses, prefixes, five-tuples, headers, and the Packet that bundles
// them together.
package packet

import "fmt"

// Addr is an IPv4 address: four octets plus a cached 32-bit integer form
// so hot-path comparisons avoid recomputing it.
type Addr struct {
	a, b, c, d uint8
	bits       uint32
}

// NewAddr builds an Addr from four octets.
func NewAddr(a, b, c, d uint8) Addr {
	return Addr{
		a: a, b: b, c: c, d: d,
		bits: uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d),
	}
}

// AddrFromUint32 builds an Addr from its packed 32-bit form.
func AddrFromUint32(bits uint32) Addr {
	return Addr{
		a:    uint8(bits >> 24),
		b:    uint8(bits >> 16),
		c:    uint8(bits >> 8),
		d:    uint8(bits),
		bits: bits,
	}
}

// Uint32 returns the cached packed integer form.
func (a Addr) Uint32() uint32 { return a.bits }

// String renders the address in dotted-quad form.
func (a Addr) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a.a, a.b, a.c, a.d)
}

// Prefix is a CIDR block: a network address and a prefix length in [0,32].
type Prefix struct {
	Network uint32
	Length  int
}

// NewPrefix constructs a Prefix, masking the network address down to
// Length significant bits.
func NewPrefix(network Addr, length int) Prefix {
	mask := prefixMask(length)
	return Prefix{Network: network.Uint32() & mask, Length: length}
}

func prefixMask(length int) uint32 {
	if length <= 0 {
		return 0
	}
	if length >= 32 {
		return 0xFFFFFFFF
	}
	return ^uint32(0) << (32 - length)
}

// Mask returns the prefix's network mask.
func (p Prefix) Mask() uint32 { return prefixMask(p.Length) }

// Contains reports whether addr falls within the prefix.
func (p Prefix) Contains(addr Addr) bool {
	return (addr.Uint32() & p.Mask()) == p.Network
}

// String renders the prefix in CIDR notation.
func (p Prefix) String() string {
	return fmt.Sprintf("%s/%d", AddrFromUint32(p.Network), p.Length)
}
