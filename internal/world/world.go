package world

import "iter"

// Group limits shared by every native implementation.
const (
	MaxGroupSize     = 5
	MaxRaidSize      = 40
	MaxRaidSubGroups = 8
)

// AllSubGroups addresses every sub-group in a broadcast.
const AllSubGroups = -1

// Player is a live or resolvable player entity.
type Player interface {
	GUID() ObjectGuid
	Name() string
	// HasSession reports whether the player is attached to a connected client.
	HasSession() bool
	// InBattleground reports whether the player currently sits in a
	// battleground raid.
	InBattleground() bool
	// Group returns the group the player belongs to, or nil.
	Group() Group
	SendPacket(p *Packet)
}

// Group is a party or raid aggregate.
type Group interface {
	GUID() ObjectGuid
	LeaderGUID() ObjectGuid
	// Members walks the member list in slot order. A nil Player marks a member
	// whose entity is not currently loaded.
	Members() iter.Seq[Player]
	MembersCount() uint32
	MemberGUID(name string) ObjectGuid
	MemberGroup(guid ObjectGuid) uint8

	IsFull() bool
	IsRaidGroup() bool
	IsBGGroup() bool
	IsLeader(guid ObjectGuid) bool
	IsMember(guid ObjectGuid) bool
	IsAssistant(guid ObjectGuid) bool
	SameSubGroup(a, b Player) bool
	HasFreeSlotSubGroup(subGroup uint8) bool

	ChangeLeader(guid ObjectGuid)
	AddInvite(player Player) bool
	RemoveMember(guid ObjectGuid, kicked bool) bool
	Disband()
	ConvertToRaid()
	ChangeMembersGroup(guid ObjectGuid, subGroup uint8)
	BroadcastPacket(p *Packet, ignorePlayersInBattleground bool, subGroup int, ignore ObjectGuid)
}

// Registry resolves identifiers and names to live players and groups.
type Registry interface {
	FindPlayer(guid ObjectGuid) Player
	FindPlayerByName(name string) Player
	FindGroup(guid ObjectGuid) Group
}
