package memory

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/louisbranch/partybind/internal/world"
)

// World holds every known player and group.
type World struct {
	players   map[world.ObjectGuid]*Player
	names     map[string]world.ObjectGuid
	groups    map[world.ObjectGuid]*Group
	nextGroup uint32
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		players: map[world.ObjectGuid]*Player{},
		names:   map[string]world.ObjectGuid{},
		groups:  map[world.ObjectGuid]*Group{},
	}
}

// NormalizeName canonicalizes a player name: first letter upper case, the
// rest lower case.
func NormalizeName(name string) string {
	lower := cases.Lower(language.Und).String(strings.TrimSpace(name))
	_, size := utf8.DecodeRuneInString(lower)
	return cases.Upper(language.Und).String(lower[:size]) + lower[size:]
}

// PlayerInfo describes a character to register.
type PlayerInfo struct {
	GUID           world.ObjectGuid
	Name           string
	Online         bool
	Session        bool
	InBattleground bool
}

// AddPlayer registers a character.
func (w *World) AddPlayer(info PlayerInfo) (*Player, error) {
	if !info.GUID.IsPlayer() {
		return nil, fmt.Errorf("player guid is required")
	}
	name := NormalizeName(info.Name)
	if name == "" {
		return nil, fmt.Errorf("player name is required")
	}
	if _, ok := w.players[info.GUID]; ok {
		return nil, fmt.Errorf("player %s already exists", info.GUID)
	}
	if _, ok := w.names[name]; ok {
		return nil, fmt.Errorf("player name %q already taken", name)
	}
	p := &Player{
		world:          w,
		guid:           info.GUID,
		name:           name,
		online:         info.Online,
		session:        info.Online && info.Session,
		inBattleground: info.InBattleground,
	}
	w.players[p.guid] = p
	w.names[name] = p.guid
	return p, nil
}

// Player returns the character with guid whether or not it is online.
func (w *World) Player(guid world.ObjectGuid) (*Player, bool) {
	p, ok := w.players[guid]
	return p, ok
}

// Players returns every character ordered by guid.
func (w *World) Players() []*Player {
	out := make([]*Player, 0, len(w.players))
	for _, guid := range slices.Sorted(maps.Keys(w.players)) {
		out = append(out, w.players[guid])
	}
	return out
}

// Groups returns every live group ordered by guid.
func (w *World) Groups() []*Group {
	out := make([]*Group, 0, len(w.groups))
	for _, guid := range slices.Sorted(maps.Keys(w.groups)) {
		out = append(out, w.groups[guid])
	}
	return out
}

// FindPlayer returns the online player with guid, or nil.
func (w *World) FindPlayer(guid world.ObjectGuid) world.Player {
	p := w.onlinePlayer(guid)
	if p == nil {
		return nil
	}
	return p
}

// FindPlayerByName returns the online player with name, or nil. Names are
// matched case-insensitively.
func (w *World) FindPlayerByName(name string) world.Player {
	guid, ok := w.names[NormalizeName(name)]
	if !ok {
		return nil
	}
	return w.FindPlayer(guid)
}

// FindGroup returns the live group with guid, or nil.
func (w *World) FindGroup(guid world.ObjectGuid) world.Group {
	g, ok := w.groups[guid]
	if !ok {
		return nil
	}
	return g
}

func (w *World) onlinePlayer(guid world.ObjectGuid) *Player {
	p, ok := w.players[guid]
	if !ok || !p.online {
		return nil
	}
	return p
}

// GroupOptions selects the kind of group to create.
type GroupOptions struct {
	Raid         bool
	Battleground bool
}

// CreateGroup forms a new group led by leader.
func (w *World) CreateGroup(leader *Player, opts GroupOptions) (*Group, error) {
	if leader == nil || leader.world != w {
		return nil, fmt.Errorf("leader is required")
	}
	if leader.group != nil {
		return nil, fmt.Errorf("%s is already in a group", leader.name)
	}
	w.nextGroup++
	for {
		if _, taken := w.groups[world.GroupGuid(w.nextGroup)]; !taken {
			break
		}
		w.nextGroup++
	}
	g := newGroup(w, world.GroupGuid(w.nextGroup), opts)
	if err := g.AddMember(leader); err != nil {
		return nil, err
	}
	g.leader = leader.guid
	w.groups[g.guid] = g
	return g, nil
}

// Slot is one member entry of a group.
type Slot struct {
	GUID      world.ObjectGuid
	Name      string
	SubGroup  uint8
	Assistant bool
}

// GroupState is the persistable form of a group.
type GroupState struct {
	GUID         world.ObjectGuid
	Leader       world.ObjectGuid
	Raid         bool
	Battleground bool
	Members      []Slot
}

// RestoreGroup recreates a group from a saved state.
func (w *World) RestoreGroup(state GroupState) (*Group, error) {
	if !state.GUID.IsGroup() || state.GUID.IsEmpty() {
		return nil, fmt.Errorf("group guid is required")
	}
	if _, ok := w.groups[state.GUID]; ok {
		return nil, fmt.Errorf("group %s already exists", state.GUID)
	}
	g := newGroup(w, state.GUID, GroupOptions{Raid: state.Raid, Battleground: state.Battleground})
	for _, slot := range state.Members {
		if slot.SubGroup >= world.MaxRaidSubGroups {
			return nil, fmt.Errorf("member %s has invalid sub-group %d", slot.GUID, slot.SubGroup)
		}
		if g.slotIndex(slot.GUID) >= 0 {
			return nil, fmt.Errorf("member %s listed twice", slot.GUID)
		}
		p, ok := w.players[slot.GUID]
		if !ok {
			return nil, fmt.Errorf("member %s is not a known player", slot.GUID)
		}
		if p.group != nil {
			return nil, fmt.Errorf("member %s already in group %s", slot.GUID, p.group.guid)
		}
		slot.Name = p.name
		g.slots = append(g.slots, slot)
		g.subGroupCounts[slot.SubGroup]++
		p.group = g
	}
	if !state.Leader.IsEmpty() && g.slotIndex(state.Leader) < 0 {
		return nil, fmt.Errorf("leader %s is not a member", state.Leader)
	}
	g.leader = state.Leader
	if counter := state.GUID.Counter(); counter > w.nextGroup {
		w.nextGroup = counter
	}
	w.groups[g.guid] = g
	return g, nil
}

func (w *World) removeGroup(g *Group) {
	delete(w.groups, g.guid)
}
