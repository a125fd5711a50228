package group

import (
	"github.com/louisbranch/partybind/internal/world"
)

// Binding adapts one native group operation to the script calling convention.
type Binding func(ctx Context, g world.Group) Result

// getMembers returns the connected members as a gapless 1..k roster.
func getMembers(_ Context, g world.Group) Result {
	roster := Roster{}
	for member := range g.Members() {
		if member == nil || !member.HasSession() {
			continue
		}
		roster = append(roster, member)
	}
	return OK(roster)
}

func getLeaderGUID(_ Context, g world.Group) Result {
	return OK(g.LeaderGUID())
}

// getLeader resolves the leader through the registry; an offline leader is
// returned as nil.
func getLeader(ctx Context, g world.Group) Result {
	return OK(ctx.findPlayer(g.LeaderGUID()))
}

func getGUID(_ Context, g world.Group) Result {
	return OK(g.GUID())
}

func changeLeader(ctx Context, g world.Group) Result {
	leader := ctx.Args.Player(1)
	if leader == nil {
		return Skip()
	}
	g.ChangeLeader(leader.GUID())
	return OK(true)
}

// isLeader accepts either a player or a player name at position 1. The name
// is only read when the argument is not a player.
func isLeader(ctx Context, g world.Group) Result {
	player := ctx.Args.Player(1)
	if player == nil {
		name, err := ctx.Args.String(1)
		if err != nil {
			return Fail(err)
		}
		player = ctx.findPlayerByName(name)
	}
	if player == nil {
		return Skip()
	}
	return OK(g.IsLeader(player.GUID()))
}

// sendPacket broadcasts to every sub-group. Arguments are all read before the
// packet is checked, so a malformed flag or guid is reported even when the
// packet is missing.
func sendPacket(ctx Context, g world.Group) Result {
	packet := ctx.Args.Packet(1)
	ignorePlayersInBattleground, err := ctx.Args.Bool(2)
	if err != nil {
		return Fail(err)
	}
	ignore, err := ctx.Args.Uint64(3)
	if err != nil {
		return Fail(err)
	}
	if packet == nil {
		return Skip()
	}
	g.BroadcastPacket(packet, ignorePlayersInBattleground, world.AllSubGroups, world.ObjectGuid(ignore))
	return OK()
}

func addInvite(ctx Context, g world.Group) Result {
	player := ctx.Args.Player(1)
	if player == nil {
		return Skip()
	}
	return OK(g.AddInvite(player))
}

func removeMember(ctx Context, g world.Group) Result {
	player := ctx.Args.Player(1)
	kicked, err := ctx.Args.OptBool(2, false)
	if err != nil {
		return Fail(err)
	}
	if player == nil {
		return Skip()
	}
	return OK(g.RemoveMember(player.GUID(), kicked))
}

func disband(_ Context, g world.Group) Result {
	g.Disband()
	return OK()
}

func isFull(_ Context, g world.Group) Result {
	return OK(g.IsFull())
}

// isLFGGroup is a placeholder until looking-for-group state is exposed
// natively. It must stay registered so scripts calling it do not fail.
func isLFGGroup(Context, world.Group) Result {
	return Skip()
}

func isRaidGroup(_ Context, g world.Group) Result {
	return OK(g.IsRaidGroup())
}

func isBGGroup(_ Context, g world.Group) Result {
	return OK(g.IsBGGroup())
}

// isBFGroup is a placeholder until battlefield groups exist natively.
func isBFGroup(Context, world.Group) Result {
	return Skip()
}

func isMember(ctx Context, g world.Group) Result {
	player := ctx.Args.Player(1)
	if player == nil {
		return Skip()
	}
	return OK(g.IsMember(player.GUID()))
}

func isAssistant(ctx Context, g world.Group) Result {
	player := ctx.Args.Player(1)
	if player == nil {
		return Skip()
	}
	return OK(g.IsAssistant(player.GUID()))
}

func sameSubGroup(ctx Context, g world.Group) Result {
	first := ctx.Args.Player(1)
	second := ctx.Args.Player(2)
	if first == nil || second == nil {
		return Skip()
	}
	return OK(g.SameSubGroup(first, second))
}

// hasFreeSlotSubGroup leaves range checking of the sub-group to the group.
func hasFreeSlotSubGroup(ctx Context, g world.Group) Result {
	subGroup, err := ctx.Args.Unsigned(1)
	if err != nil {
		return Fail(err)
	}
	return OK(g.HasFreeSlotSubGroup(uint8(subGroup)))
}

func getMemberGUID(ctx Context, g world.Group) Result {
	name, err := ctx.Args.String(1)
	if err != nil {
		return Fail(err)
	}
	return OK(g.MemberGUID(name))
}

// getMembersCount counts every member, connected or not.
func getMembersCount(_ Context, g world.Group) Result {
	return OK(g.MembersCount())
}

// convertToLFG is a placeholder; see isLFGGroup.
func convertToLFG(Context, world.Group) Result {
	return Skip()
}

func convertToRaid(_ Context, g world.Group) Result {
	g.ConvertToRaid()
	return OK()
}

func changeMembersGroup(ctx Context, g world.Group) Result {
	player := ctx.Args.Player(1)
	subGroup, err := ctx.Args.Unsigned(2)
	if err != nil {
		return Fail(err)
	}
	if player == nil {
		return Skip()
	}
	g.ChangeMembersGroup(player.GUID(), uint8(subGroup))
	return OK()
}

func getMemberGroup(ctx Context, g world.Group) Result {
	player := ctx.Args.Player(1)
	if player == nil {
		return Skip()
	}
	return OK(g.MemberGroup(player.GUID()))
}
