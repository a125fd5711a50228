package group

import (
	"iter"

	"github.com/louisbranch/partybind/internal/world"
)

type fakePlayer struct {
	guid    world.ObjectGuid
	name    string
	session bool
}

func (p *fakePlayer) GUID() world.ObjectGuid   { return p.guid }
func (p *fakePlayer) Name() string             { return p.name }
func (p *fakePlayer) HasSession() bool         { return p.session }
func (p *fakePlayer) InBattleground() bool     { return false }
func (p *fakePlayer) Group() world.Group       { return nil }
func (p *fakePlayer) SendPacket(*world.Packet) {}

type fakeRegistry struct {
	players []*fakePlayer
}

func (r fakeRegistry) FindPlayer(guid world.ObjectGuid) world.Player {
	for _, p := range r.players {
		if p.guid == guid {
			return p
		}
	}
	return nil
}

func (r fakeRegistry) FindPlayerByName(name string) world.Player {
	for _, p := range r.players {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (r fakeRegistry) FindGroup(world.ObjectGuid) world.Group { return nil }

// spyGroup records every native call made against it.
type spyGroup struct {
	calls   map[string]int
	members []world.Player
	leader  world.ObjectGuid

	lastGuid      world.ObjectGuid
	lastKicked    bool
	lastSubGroup  uint8
	lastIgnoreBG  bool
	lastIgnore    world.ObjectGuid
	lastBroadcast int
	lastPacket    *world.Packet
}

func newSpyGroup(members ...world.Player) *spyGroup {
	return &spyGroup{calls: map[string]int{}, members: members}
}

func (g *spyGroup) record(name string) { g.calls[name]++ }

func (g *spyGroup) total() int {
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

func (g *spyGroup) GUID() world.ObjectGuid {
	g.record("GUID")
	return world.GroupGuid(1)
}

func (g *spyGroup) LeaderGUID() world.ObjectGuid {
	g.record("LeaderGUID")
	return g.leader
}

func (g *spyGroup) Members() iter.Seq[world.Player] {
	g.record("Members")
	return func(yield func(world.Player) bool) {
		for _, m := range g.members {
			if !yield(m) {
				return
			}
		}
	}
}

func (g *spyGroup) MembersCount() uint32 {
	g.record("MembersCount")
	return uint32(len(g.members))
}

func (g *spyGroup) MemberGUID(name string) world.ObjectGuid {
	g.record("MemberGUID")
	for _, m := range g.members {
		if m != nil && m.Name() == name {
			return m.GUID()
		}
	}
	return world.EmptyGuid
}

func (g *spyGroup) MemberGroup(guid world.ObjectGuid) uint8 {
	g.record("MemberGroup")
	g.lastGuid = guid
	return 2
}

func (g *spyGroup) IsFull() bool      { g.record("IsFull"); return true }
func (g *spyGroup) IsRaidGroup() bool { g.record("IsRaidGroup"); return true }
func (g *spyGroup) IsBGGroup() bool   { g.record("IsBGGroup"); return false }

func (g *spyGroup) IsLeader(guid world.ObjectGuid) bool {
	g.record("IsLeader")
	return guid == g.leader
}

func (g *spyGroup) IsMember(guid world.ObjectGuid) bool {
	g.record("IsMember")
	g.lastGuid = guid
	return true
}

func (g *spyGroup) IsAssistant(guid world.ObjectGuid) bool {
	g.record("IsAssistant")
	g.lastGuid = guid
	return false
}

func (g *spyGroup) SameSubGroup(a, b world.Player) bool {
	g.record("SameSubGroup")
	return a.GUID() != b.GUID()
}

func (g *spyGroup) HasFreeSlotSubGroup(subGroup uint8) bool {
	g.record("HasFreeSlotSubGroup")
	g.lastSubGroup = subGroup
	return subGroup < world.MaxRaidSubGroups
}

func (g *spyGroup) ChangeLeader(guid world.ObjectGuid) {
	g.record("ChangeLeader")
	g.leader = guid
}

func (g *spyGroup) AddInvite(world.Player) bool {
	g.record("AddInvite")
	return true
}

func (g *spyGroup) RemoveMember(guid world.ObjectGuid, kicked bool) bool {
	g.record("RemoveMember")
	g.lastGuid = guid
	g.lastKicked = kicked
	return true
}

func (g *spyGroup) Disband()       { g.record("Disband") }
func (g *spyGroup) ConvertToRaid() { g.record("ConvertToRaid") }

func (g *spyGroup) ChangeMembersGroup(guid world.ObjectGuid, subGroup uint8) {
	g.record("ChangeMembersGroup")
	g.lastGuid = guid
	g.lastSubGroup = subGroup
}

func (g *spyGroup) BroadcastPacket(p *world.Packet, ignoreBG bool, subGroup int, ignore world.ObjectGuid) {
	g.record("BroadcastPacket")
	g.lastPacket = p
	g.lastIgnoreBG = ignoreBG
	g.lastBroadcast = subGroup
	g.lastIgnore = ignore
}
