package group

import (
	stderrors "errors"
	"testing"

	apperrors "github.com/louisbranch/partybind/internal/platform/errors"
	"github.com/louisbranch/partybind/internal/world"
	"github.com/louisbranch/partybind/internal/world/memory"
)

func call(t *testing.T, name string, g world.Group, reg world.Registry, args ...any) Result {
	t.Helper()
	b, ok := Lookup(name)
	if !ok {
		t.Fatalf("binding %q not registered", name)
	}
	return b(Context{Args: List(args), Registry: reg}, g)
}

func TestEveryOperationIsRegistered(t *testing.T) {
	want := []string{
		"AddInvite", "ChangeLeader", "ChangeMembersGroup", "ConvertToLFG", "ConvertToRaid",
		"Disband", "GetGUID", "GetLeader", "GetLeaderGUID", "GetMemberGUID", "GetMemberGroup",
		"GetMembers", "GetMembersCount", "HasFreeSlotSubGroup", "IsAssistant", "IsFull",
		"IsLeader", "IsMember", "RemoveMember", "SameSubGroup", "SendPacket", "isBFGroup",
		"isBGGroup", "isLFGGroup", "isRaidGroup",
	}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGetMembersSkipsDisconnectedWithoutGaps(t *testing.T) {
	a := &fakePlayer{guid: world.PlayerGuid(1), name: "A", session: true}
	b := &fakePlayer{guid: world.PlayerGuid(2), name: "B", session: false}
	c := &fakePlayer{guid: world.PlayerGuid(3), name: "C", session: true}
	g := newSpyGroup(a, nil, b, c)

	res := call(t, "GetMembers", g, nil)
	if res.Kind != KindOK || res.Count() != 1 {
		t.Fatalf("result = %+v, want one value", res)
	}
	roster, ok := res.Values[0].(Roster)
	if !ok {
		t.Fatalf("value = %T, want Roster", res.Values[0])
	}
	if len(roster) != 2 || roster[0] != world.Player(a) || roster[1] != world.Player(c) {
		t.Fatalf("roster = %v, want [A C]", roster)
	}

	count := call(t, "GetMembersCount", g, nil)
	if count.Values[0] != uint32(4) {
		t.Fatalf("members count = %v, want 4", count.Values[0])
	}
}

func TestGetMembersEmptyGroupReturnsEmptyRoster(t *testing.T) {
	res := call(t, "GetMembers", newSpyGroup(), nil)
	roster := res.Values[0].(Roster)
	if roster == nil || len(roster) != 0 {
		t.Fatalf("roster = %#v, want empty non-nil", roster)
	}
}

func TestGetLeaderResolvesThroughRegistry(t *testing.T) {
	leader := &fakePlayer{guid: world.PlayerGuid(5), name: "Lead", session: true}
	g := newSpyGroup(leader)
	g.leader = leader.guid

	res := call(t, "GetLeader", g, fakeRegistry{players: []*fakePlayer{leader}})
	if res.Count() != 1 || res.Values[0] != world.Player(leader) {
		t.Fatalf("leader = %+v, want %v", res, leader)
	}

	offline := call(t, "GetLeader", g, fakeRegistry{})
	if offline.Count() != 1 || offline.Values[0] != nil {
		t.Fatalf("offline leader = %+v, want single nil value", offline)
	}

	guid := call(t, "GetLeaderGUID", g, nil)
	if guid.Values[0] != leader.guid {
		t.Fatalf("leader guid = %v, want %v", guid.Values[0], leader.guid)
	}
}

func TestChangeLeaderPushesTrue(t *testing.T) {
	p := &fakePlayer{guid: world.PlayerGuid(9)}
	g := newSpyGroup(p)
	res := call(t, "ChangeLeader", g, nil, p)
	if res.Count() != 1 || res.Values[0] != true {
		t.Fatalf("result = %+v, want true", res)
	}
	if g.leader != p.guid {
		t.Fatalf("leader = %v, want %v", g.leader, p.guid)
	}
}

func TestChangeLeaderThenGetLeaderGUIDOnMemoryWorld(t *testing.T) {
	w := memory.NewWorld()
	var players []*memory.Player
	for i, name := range []string{"Anduin", "Varian", "Genn"} {
		p, err := w.AddPlayer(memory.PlayerInfo{GUID: world.PlayerGuid(uint32(i + 1)), Name: name, Online: true, Session: true})
		if err != nil {
			t.Fatalf("add player: %v", err)
		}
		players = append(players, p)
	}
	g, err := w.CreateGroup(players[0], memory.GroupOptions{})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	for _, p := range players[1:] {
		if err := g.AddMember(p); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}

	for _, p := range players {
		if res := call(t, "ChangeLeader", g, w, p); res.Kind != KindOK {
			t.Fatalf("change leader: %+v", res)
		}
		res := call(t, "GetLeaderGUID", g, w)
		if res.Values[0] != p.GUID() {
			t.Fatalf("leader guid = %v, want %v", res.Values[0], p.GUID())
		}
		leader := call(t, "GetLeader", g, w)
		if leader.Values[0] != world.Player(p) {
			t.Fatalf("leader = %v, want %v", leader.Values[0], p)
		}
	}
}

func TestPlayerBindingsSkipOnMissingPlayer(t *testing.T) {
	names := []string{"ChangeLeader", "AddInvite", "RemoveMember", "IsMember", "IsAssistant", "SameSubGroup", "GetMemberGroup"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			g := newSpyGroup(&fakePlayer{guid: world.PlayerGuid(1), session: true})
			g.leader = world.PlayerGuid(1)

			for _, args := range [][]any{nil, {"not-a-player"}, {world.PlayerGuid(1)}} {
				res := call(t, name, g, nil, args...)
				if res.Kind != KindSkip || res.Count() != 0 {
					t.Fatalf("args %v: result = %+v, want skip", args, res)
				}
			}
			if g.total() != 0 {
				t.Fatalf("native calls = %v, want none", g.calls)
			}
			if g.leader != world.PlayerGuid(1) || len(g.members) != 1 {
				t.Fatal("expected group state to be unchanged")
			}
		})
	}
}

func TestSameSubGroupNeedsBothPlayers(t *testing.T) {
	a := &fakePlayer{guid: world.PlayerGuid(1)}
	b := &fakePlayer{guid: world.PlayerGuid(2)}
	g := newSpyGroup(a, b)

	if res := call(t, "SameSubGroup", g, nil, a); res.Kind != KindSkip {
		t.Fatalf("one player: %+v, want skip", res)
	}
	res := call(t, "SameSubGroup", g, nil, a, b)
	if res.Count() != 1 || res.Values[0] != true {
		t.Fatalf("two players: %+v, want true", res)
	}
}

func TestIsLeaderResolvesByHandleOrName(t *testing.T) {
	leader := &fakePlayer{guid: world.PlayerGuid(3), name: "Thrall", session: true}
	other := &fakePlayer{guid: world.PlayerGuid(4), name: "Garrosh", session: true}
	reg := fakeRegistry{players: []*fakePlayer{leader, other}}
	g := newSpyGroup(leader, other)
	g.leader = leader.guid

	for _, p := range []*fakePlayer{leader, other} {
		byHandle := call(t, "IsLeader", g, reg, p)
		byName := call(t, "IsLeader", g, reg, p.name)
		if byHandle.Count() != 1 || byName.Count() != 1 {
			t.Fatalf("%s: handle %+v, name %+v", p.name, byHandle, byName)
		}
		if byHandle.Values[0] != byName.Values[0] {
			t.Fatalf("%s: handle %v != name %v", p.name, byHandle.Values[0], byName.Values[0])
		}
		if byHandle.Values[0] != (p == leader) {
			t.Fatalf("%s: is leader = %v", p.name, byHandle.Values[0])
		}
	}

	if res := call(t, "IsLeader", g, reg, "Nobody"); res.Kind != KindSkip {
		t.Fatalf("unknown name: %+v, want skip", res)
	}
	if res := call(t, "IsLeader", g, nil, "Thrall"); res.Kind != KindSkip {
		t.Fatalf("no registry: %+v, want skip", res)
	}
}

func TestIsLeaderRejectsNonStringFallback(t *testing.T) {
	g := newSpyGroup()
	for _, args := range [][]any{nil, {true}, {world.NewPacket(1, 0)}} {
		res := call(t, "IsLeader", g, fakeRegistry{}, args...)
		if res.Kind != KindArgumentError {
			t.Fatalf("args %v: %+v, want argument error", args, res)
		}
		if ArgumentPosition(res.Err) != 1 {
			t.Fatalf("position = %d, want 1", ArgumentPosition(res.Err))
		}
	}
	if g.total() != 0 {
		t.Fatalf("native calls = %v, want none", g.calls)
	}
}

func TestStubsNeverTouchTheGroup(t *testing.T) {
	for _, name := range []string{"isLFGGroup", "isBFGroup", "ConvertToLFG"} {
		g := newSpyGroup(&fakePlayer{guid: world.PlayerGuid(1)})
		for _, args := range [][]any{nil, {true}, {"x", 1, world.NewPacket(1, 0)}} {
			res := call(t, name, g, nil, args...)
			if res.Count() != 0 || res.Err != nil {
				t.Fatalf("%s(%v) = %+v, want empty", name, args, res)
			}
		}
		if g.total() != 0 {
			t.Fatalf("%s native calls = %v, want none", name, g.calls)
		}
	}
}

func TestSendPacketArguments(t *testing.T) {
	packet := world.NewPacket(0x10, 0)

	t.Run("broadcasts", func(t *testing.T) {
		g := newSpyGroup()
		res := call(t, "SendPacket", g, nil, packet, true, world.PlayerGuid(4))
		if res.Kind != KindOK || res.Count() != 0 {
			t.Fatalf("result = %+v, want ok with no values", res)
		}
		if g.lastPacket != packet || !g.lastIgnoreBG || g.lastIgnore != world.PlayerGuid(4) || g.lastBroadcast != world.AllSubGroups {
			t.Fatalf("broadcast = %+v", g)
		}
	})

	t.Run("missing packet is a no-op", func(t *testing.T) {
		g := newSpyGroup()
		res := call(t, "SendPacket", g, nil, nil, false, 0)
		if res.Kind != KindSkip {
			t.Fatalf("result = %+v, want skip", res)
		}
		if g.total() != 0 {
			t.Fatalf("native calls = %v, want none", g.calls)
		}
	})

	t.Run("malformed flag fails even without packet", func(t *testing.T) {
		g := newSpyGroup()
		res := call(t, "SendPacket", g, nil, nil, "yes", 0)
		if res.Kind != KindArgumentError || ArgumentPosition(res.Err) != 2 {
			t.Fatalf("result = %+v, want argument error at 2", res)
		}
		if !stderrors.Is(res.Err, apperrors.New(apperrors.CodeArgumentType, "")) {
			t.Fatalf("err = %v, want type error", res.Err)
		}
	})

	t.Run("missing guid fails", func(t *testing.T) {
		g := newSpyGroup()
		res := call(t, "SendPacket", g, nil, packet, false)
		if res.Kind != KindArgumentError || ArgumentPosition(res.Err) != 3 {
			t.Fatalf("result = %+v, want argument error at 3", res)
		}
		if apperrors.GetCode(res.Err) != apperrors.CodeArgumentMissing {
			t.Fatalf("code = %s, want %s", apperrors.GetCode(res.Err), apperrors.CodeArgumentMissing)
		}
		if g.total() != 0 {
			t.Fatalf("native calls = %v, want none", g.calls)
		}
	})
}

func TestRemoveMemberOptionalKick(t *testing.T) {
	p := &fakePlayer{guid: world.PlayerGuid(2)}

	g := newSpyGroup(p)
	res := call(t, "RemoveMember", g, nil, p)
	if res.Count() != 1 || res.Values[0] != true || g.lastKicked {
		t.Fatalf("default removal = %+v kicked=%v", res, g.lastKicked)
	}
	call(t, "RemoveMember", g, nil, p, true)
	if !g.lastKicked {
		t.Fatal("expected kicked removal")
	}
	call(t, "RemoveMember", g, nil, p, nil)
	if g.lastKicked {
		t.Fatal("expected nil flag to default to false")
	}

	bad := newSpyGroup(p)
	res = call(t, "RemoveMember", bad, nil, nil, 1)
	if res.Kind != KindArgumentError || ArgumentPosition(res.Err) != 2 {
		t.Fatalf("bad flag = %+v, want argument error at 2", res)
	}
	if bad.total() != 0 {
		t.Fatalf("native calls = %v, want none", bad.calls)
	}
}

func TestHasFreeSlotSubGroupDelegatesWithoutRangeCheck(t *testing.T) {
	g := newSpyGroup()
	res := call(t, "HasFreeSlotSubGroup", g, nil, 12)
	if res.Count() != 1 || res.Values[0] != false {
		t.Fatalf("result = %+v, want false", res)
	}
	if g.calls["HasFreeSlotSubGroup"] != 1 || g.lastSubGroup != 12 {
		t.Fatalf("delegated sub-group = %d calls %v", g.lastSubGroup, g.calls)
	}

	call(t, "HasFreeSlotSubGroup", g, nil, 256+3)
	if g.lastSubGroup != 3 {
		t.Fatalf("sub-group = %d, want truncation to 3", g.lastSubGroup)
	}

	bad := call(t, "HasFreeSlotSubGroup", g, nil, "three")
	if bad.Kind != KindArgumentError {
		t.Fatalf("string sub-group = %+v, want argument error", bad)
	}
	if g.calls["HasFreeSlotSubGroup"] != 2 {
		t.Fatalf("calls = %d, want 2", g.calls["HasFreeSlotSubGroup"])
	}
}

func TestGetMemberGUIDRequiresString(t *testing.T) {
	p := &fakePlayer{guid: world.PlayerGuid(8), name: "Sylvanas"}
	g := newSpyGroup(p)

	res := call(t, "GetMemberGUID", g, nil, "Sylvanas")
	if res.Values[0] != p.guid {
		t.Fatalf("guid = %v, want %v", res.Values[0], p.guid)
	}
	res = call(t, "GetMemberGUID", g, nil, "Nobody")
	if res.Values[0] != world.EmptyGuid {
		t.Fatalf("guid = %v, want empty", res.Values[0])
	}
	if res := call(t, "GetMemberGUID", g, nil); res.Kind != KindArgumentError {
		t.Fatalf("missing name = %+v, want argument error", res)
	}
}

func TestChangeMembersGroup(t *testing.T) {
	p := &fakePlayer{guid: world.PlayerGuid(6)}

	g := newSpyGroup(p)
	res := call(t, "ChangeMembersGroup", g, nil, p, 4)
	if res.Kind != KindOK || res.Count() != 0 {
		t.Fatalf("result = %+v, want ok with no values", res)
	}
	if g.lastGuid != p.guid || g.lastSubGroup != 4 {
		t.Fatalf("moved %v to %d", g.lastGuid, g.lastSubGroup)
	}

	skip := newSpyGroup(p)
	if res := call(t, "ChangeMembersGroup", skip, nil, nil, 4); res.Kind != KindSkip {
		t.Fatalf("missing player = %+v, want skip", res)
	}
	if res := call(t, "ChangeMembersGroup", skip, nil, p, false); res.Kind != KindArgumentError {
		t.Fatalf("bad sub-group = %+v, want argument error", res)
	}
	if skip.total() != 0 {
		t.Fatalf("native calls = %v, want none", skip.calls)
	}
}

func TestScalarQueries(t *testing.T) {
	p := &fakePlayer{guid: world.PlayerGuid(1)}
	g := newSpyGroup(p)
	tests := []struct {
		name string
		args []any
		want any
	}{
		{name: "IsFull", want: true},
		{name: "isRaidGroup", want: true},
		{name: "isBGGroup", want: false},
		{name: "GetGUID", want: world.GroupGuid(1)},
		{name: "IsMember", args: []any{p}, want: true},
		{name: "IsAssistant", args: []any{p}, want: false},
		{name: "GetMemberGroup", args: []any{p}, want: uint8(2)},
		{name: "AddInvite", args: []any{p}, want: true},
	}
	for _, tt := range tests {
		res := call(t, tt.name, g, nil, tt.args...)
		if res.Count() != 1 || res.Values[0] != tt.want {
			t.Fatalf("%s = %+v, want %v", tt.name, res, tt.want)
		}
	}
}

func TestVoidOperationsReturnNothing(t *testing.T) {
	for _, name := range []string{"Disband", "ConvertToRaid"} {
		g := newSpyGroup()
		res := call(t, name, g, nil)
		if res.Kind != KindOK || res.Count() != 0 {
			t.Fatalf("%s = %+v, want ok with no values", name, res)
		}
		if g.calls[name] != 1 {
			t.Fatalf("%s native calls = %v", name, g.calls)
		}
	}
}

func TestCallUnknownBinding(t *testing.T) {
	res := Call("Teleport", Context{Args: List(nil)}, newSpyGroup())
	if res.Kind != KindArgumentError {
		t.Fatalf("result = %+v, want argument error", res)
	}
	if apperrors.GetCode(res.Err) != apperrors.CodeUnknownBinding {
		t.Fatalf("code = %s, want %s", apperrors.GetCode(res.Err), apperrors.CodeUnknownBinding)
	}
}
