package world

import (
	"fmt"
	"strconv"
	"strings"
)

// HighGuid tags the entity kind carried in the upper 16 bits of an ObjectGuid.
type HighGuid uint16

const (
	HighGuidPlayer HighGuid = 0x0000
	HighGuidGroup  HighGuid = 0x1F50
)

// ObjectGuid identifies an entity uniquely for the lifetime of a session.
type ObjectGuid uint64

// EmptyGuid is the zero identifier, used when no entity matches.
const EmptyGuid ObjectGuid = 0

// NewObjectGuid packs a high tag and a counter.
func NewObjectGuid(high HighGuid, counter uint32) ObjectGuid {
	return ObjectGuid(uint64(high)<<48 | uint64(counter))
}

// PlayerGuid returns the identifier of the player with the given low counter.
func PlayerGuid(counter uint32) ObjectGuid {
	return NewObjectGuid(HighGuidPlayer, counter)
}

// GroupGuid returns the identifier of the group with the given low counter.
func GroupGuid(counter uint32) ObjectGuid {
	return NewObjectGuid(HighGuidGroup, counter)
}

// IsEmpty reports whether g is the zero identifier.
func (g ObjectGuid) IsEmpty() bool { return g == EmptyGuid }

// High returns the entity kind tag.
func (g ObjectGuid) High() HighGuid { return HighGuid(uint64(g) >> 48) }

// Counter returns the low 32-bit counter.
func (g ObjectGuid) Counter() uint32 { return uint32(g) }

// IsPlayer reports whether g identifies a player.
func (g ObjectGuid) IsPlayer() bool { return !g.IsEmpty() && g.High() == HighGuidPlayer }

// IsGroup reports whether g identifies a group.
func (g ObjectGuid) IsGroup() bool { return g.High() == HighGuidGroup }

func (g ObjectGuid) String() string {
	switch {
	case g.IsEmpty():
		return "Empty"
	case g.IsPlayer():
		return fmt.Sprintf("Player (Guid: %d)", g.Counter())
	case g.IsGroup():
		return fmt.Sprintf("Group (Guid: %d)", g.Counter())
	default:
		return fmt.Sprintf("0x%016X", uint64(g))
	}
}

// ParseObjectGuid parses a decimal or 0x-prefixed hexadecimal identifier.
func ParseObjectGuid(value string) (ObjectGuid, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return EmptyGuid, fmt.Errorf("guid is required")
	}
	parsed, err := strconv.ParseUint(value, 0, 64)
	if err != nil {
		return EmptyGuid, fmt.Errorf("parse guid %q: %w", value, err)
	}
	return ObjectGuid(parsed), nil
}
