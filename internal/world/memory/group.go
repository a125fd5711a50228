package memory

import (
	"fmt"
	"iter"
	"slices"

	"github.com/louisbranch/partybind/internal/world"
)

// Opcodes sent to members when they leave a group.
const (
	OpcodeGroupUninvite  uint16 = 0x077
	OpcodeGroupDestroyed uint16 = 0x07C
)

// Group is a party or raid inside a World.
type Group struct {
	world          *World
	guid           world.ObjectGuid
	leader         world.ObjectGuid
	slots          []Slot
	subGroupCounts [world.MaxRaidSubGroups]uint8
	raid           bool
	battleground   bool
	invites        []*Player
	disbanded      bool
}

func newGroup(w *World, guid world.ObjectGuid, opts GroupOptions) *Group {
	return &Group{
		world:        w,
		guid:         guid,
		raid:         opts.Raid || opts.Battleground,
		battleground: opts.Battleground,
	}
}

func (g *Group) GUID() world.ObjectGuid       { return g.guid }
func (g *Group) LeaderGUID() world.ObjectGuid { return g.leader }
func (g *Group) MembersCount() uint32         { return uint32(len(g.slots)) }
func (g *Group) IsRaidGroup() bool            { return g.raid }
func (g *Group) IsBGGroup() bool              { return g.battleground }

// Disbanded reports whether the group has been dissolved.
func (g *Group) Disbanded() bool { return g.disbanded }

// Members yields the online player for each slot, or nil for members that
// are not loaded.
func (g *Group) Members() iter.Seq[world.Player] {
	slots := slices.Clone(g.slots)
	return func(yield func(world.Player) bool) {
		for _, slot := range slots {
			if !yield(g.world.FindPlayer(slot.GUID)) {
				return
			}
		}
	}
}

// Slots returns a copy of the member slots in order.
func (g *Group) Slots() []Slot { return slices.Clone(g.slots) }

// Invitees returns players with a pending invite.
func (g *Group) Invitees() []*Player { return slices.Clone(g.invites) }

// State returns the persistable form of the group.
func (g *Group) State() GroupState {
	return GroupState{
		GUID:         g.guid,
		Leader:       g.leader,
		Raid:         g.raid,
		Battleground: g.battleground,
		Members:      g.Slots(),
	}
}

func (g *Group) slotIndex(guid world.ObjectGuid) int {
	return slices.IndexFunc(g.slots, func(s Slot) bool { return s.GUID == guid })
}

func (g *Group) maxSize() int {
	if g.raid {
		return world.MaxRaidSize
	}
	return world.MaxGroupSize
}

func (g *Group) IsFull() bool {
	return len(g.slots) >= g.maxSize()
}

func (g *Group) IsLeader(guid world.ObjectGuid) bool {
	return !guid.IsEmpty() && g.leader == guid
}

func (g *Group) IsMember(guid world.ObjectGuid) bool {
	return g.slotIndex(guid) >= 0
}

func (g *Group) IsAssistant(guid world.ObjectGuid) bool {
	i := g.slotIndex(guid)
	return i >= 0 && g.slots[i].Assistant
}

func (g *Group) SameSubGroup(a, b world.Player) bool {
	if a == nil || b == nil {
		return false
	}
	i, j := g.slotIndex(a.GUID()), g.slotIndex(b.GUID())
	if i < 0 || j < 0 {
		return false
	}
	return g.slots[i].SubGroup == g.slots[j].SubGroup
}

func (g *Group) HasFreeSlotSubGroup(subGroup uint8) bool {
	return subGroup < world.MaxRaidSubGroups && g.subGroupCounts[subGroup] < world.MaxGroupSize
}

// MemberGUID returns the guid of the member called name, or the empty guid.
func (g *Group) MemberGUID(name string) world.ObjectGuid {
	name = NormalizeName(name)
	for _, slot := range g.slots {
		if slot.Name == name {
			return slot.GUID
		}
	}
	return world.EmptyGuid
}

// MemberGroup returns the member's sub-group, or MaxRaidSubGroups+1 for
// non-members.
func (g *Group) MemberGroup(guid world.ObjectGuid) uint8 {
	i := g.slotIndex(guid)
	if i < 0 {
		return world.MaxRaidSubGroups + 1
	}
	return g.slots[i].SubGroup
}

// AddMember places p in the first sub-group with a free slot.
func (g *Group) AddMember(p *Player) error {
	if g.disbanded {
		return fmt.Errorf("group %s is disbanded", g.guid)
	}
	if p == nil || p.world != g.world {
		return fmt.Errorf("player is required")
	}
	if p.group != nil {
		return fmt.Errorf("%s is already in a group", p.name)
	}
	if g.IsFull() {
		return fmt.Errorf("group %s is full", g.guid)
	}
	subGroup := uint8(0)
	for ; subGroup < world.MaxRaidSubGroups; subGroup++ {
		if g.HasFreeSlotSubGroup(subGroup) {
			break
		}
	}
	g.removeInvite(p)
	g.slots = append(g.slots, Slot{GUID: p.guid, Name: p.name, SubGroup: subGroup})
	g.subGroupCounts[subGroup]++
	p.group = g
	return nil
}

// SetAssistant grants or revokes the assistant flag of a member.
func (g *Group) SetAssistant(guid world.ObjectGuid, assistant bool) bool {
	i := g.slotIndex(guid)
	if i < 0 {
		return false
	}
	g.slots[i].Assistant = assistant
	return true
}

// ChangeLeader promotes a member; non-members are ignored.
func (g *Group) ChangeLeader(guid world.ObjectGuid) {
	if g.slotIndex(guid) < 0 {
		return
	}
	g.leader = guid
}

// AddInvite records a pending invite. It fails when the player already has
// a pending invite or belongs to a group.
func (g *Group) AddInvite(player world.Player) bool {
	p, ok := player.(*Player)
	if !ok || p == nil || p.world != g.world || g.disbanded {
		return false
	}
	if p.invite != nil || p.group != nil {
		return false
	}
	g.invites = append(g.invites, p)
	p.invite = g
	return true
}

func (g *Group) removeInvite(p *Player) {
	g.invites = slices.DeleteFunc(g.invites, func(other *Player) bool { return other == p })
	if p.invite == g {
		p.invite = nil
	}
}

// RemoveMember removes guid and reports whether it was a member. Removing
// from a group that would drop below two members (one for battleground
// groups) disbands it instead.
func (g *Group) RemoveMember(guid world.ObjectGuid, kicked bool) bool {
	i := g.slotIndex(guid)
	if i < 0 {
		return false
	}
	minimum := 2
	if g.battleground {
		minimum = 1
	}
	if len(g.slots) <= minimum {
		if kicked {
			g.notify(guid, OpcodeGroupUninvite)
		}
		g.Disband()
		return true
	}

	slot := g.slots[i]
	g.slots = slices.Delete(g.slots, i, i+1)
	g.subGroupCounts[slot.SubGroup]--
	if p, ok := g.world.players[guid]; ok {
		p.group = nil
	}
	if kicked {
		g.notify(guid, OpcodeGroupUninvite)
	}
	if g.leader == guid {
		g.leader = g.slots[0].GUID
	}
	return true
}

// Disband dissolves the group, clearing membership and pending invites.
func (g *Group) Disband() {
	if g.disbanded {
		return
	}
	for _, slot := range g.slots {
		g.notify(slot.GUID, OpcodeGroupDestroyed)
		if p, ok := g.world.players[slot.GUID]; ok && p.group == g {
			p.group = nil
		}
	}
	for _, p := range g.invites {
		if p.invite == g {
			p.invite = nil
		}
	}
	g.slots = nil
	g.invites = nil
	g.subGroupCounts = [world.MaxRaidSubGroups]uint8{}
	g.leader = world.EmptyGuid
	g.disbanded = true
	g.world.removeGroup(g)
}

// ConvertToRaid lifts the size limit to a full raid.
func (g *Group) ConvertToRaid() {
	g.raid = true
}

// ChangeMembersGroup moves a raid member into subGroup when it has room.
func (g *Group) ChangeMembersGroup(guid world.ObjectGuid, subGroup uint8) {
	if !g.raid || !g.HasFreeSlotSubGroup(subGroup) {
		return
	}
	i := g.slotIndex(guid)
	if i < 0 || g.slots[i].SubGroup == subGroup {
		return
	}
	g.subGroupCounts[g.slots[i].SubGroup]--
	g.slots[i].SubGroup = subGroup
	g.subGroupCounts[subGroup]++
}

// BroadcastPacket sends p to connected members. subGroup restricts delivery to
// one sub-group unless it is world.AllSubGroups.
func (g *Group) BroadcastPacket(p *world.Packet, ignorePlayersInBattleground bool, subGroup int, ignore world.ObjectGuid) {
	if p == nil {
		return
	}
	for _, slot := range g.slots {
		player := g.world.onlinePlayer(slot.GUID)
		if player == nil || !player.HasSession() {
			continue
		}
		if !ignore.IsEmpty() && slot.GUID == ignore {
			continue
		}
		if ignorePlayersInBattleground && player.inBattleground {
			continue
		}
		if subGroup != world.AllSubGroups && int(slot.SubGroup) != subGroup {
			continue
		}
		player.SendPacket(p)
	}
}

func (g *Group) notify(guid world.ObjectGuid, opcode uint16) {
	if p := g.world.onlinePlayer(guid); p != nil {
		p.SendPacket(world.NewPacket(opcode, 0))
	}
}
