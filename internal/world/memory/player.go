package memory

import (
	"github.com/louisbranch/partybind/internal/world"
)

// Player is a character known to a World.
type Player struct {
	world          *World
	guid           world.ObjectGuid
	name           string
	online         bool
	session        bool
	inBattleground bool
	group          *Group
	invite         *Group
	received       []*world.Packet
}

func (p *Player) GUID() world.ObjectGuid { return p.guid }
func (p *Player) Name() string           { return p.name }
func (p *Player) HasSession() bool       { return p.online && p.session }
func (p *Player) InBattleground() bool   { return p.inBattleground }

// Online reports whether the player is loaded in the world.
func (p *Player) Online() bool { return p.online }

// Group returns the player's group, or nil.
func (p *Player) Group() world.Group {
	if p.group == nil {
		return nil
	}
	return p.group
}

// Invite returns the group that invited the player, or nil.
func (p *Player) Invite() *Group { return p.invite }

// SendPacket delivers p when the player has a session and drops it otherwise.
func (p *Player) SendPacket(packet *world.Packet) {
	if packet == nil || !p.HasSession() {
		return
	}
	p.received = append(p.received, packet)
}

// Received returns packets delivered so far.
func (p *Player) Received() []*world.Packet { return p.received }

// SetOnline loads or unloads the player; unloading also drops the session.
func (p *Player) SetOnline(online bool) {
	p.online = online
	if !online {
		p.session = false
	}
}

// SetSession attaches or detaches the client session of an online player.
func (p *Player) SetSession(session bool) {
	p.session = session && p.online
}

// SetInBattleground moves the player in or out of a battleground.
func (p *Player) SetInBattleground(in bool) { p.inBattleground = in }
