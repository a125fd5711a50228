package luascript

import (
	"github.com/Shopify/go-lua"

	"github.com/louisbranch/partybind/internal/world"
)

func (e *Engine) registerGlobals() {
	globals := []lua.RegistryFunction{
		{Name: "GetPlayerByName", Function: e.getPlayerByName},
		{Name: "GetPlayerByGUID", Function: e.getPlayerByGUID},
		{Name: "GetGroupByGUID", Function: e.getGroupByGUID},
		{Name: "CreatePacket", Function: createPacket},
	}
	for _, fn := range globals {
		e.state.PushGoFunction(fn.Function)
		e.state.SetGlobal(fn.Name)
	}
}

func (e *Engine) getPlayerByName(l *lua.State) int {
	name := lua.CheckString(l, 1)
	if e.registry == nil {
		l.PushNil()
		return 1
	}
	pushPlayer(l, e.registry.FindPlayerByName(name))
	return 1
}

func (e *Engine) getPlayerByGUID(l *lua.State) int {
	guid, err := stackArgs{l: l}.Uint64(1)
	if err != nil {
		raiseArgument(l, 0, err)
		return 0
	}
	if e.registry == nil {
		l.PushNil()
		return 1
	}
	pushPlayer(l, e.registry.FindPlayer(world.ObjectGuid(guid)))
	return 1
}

func (e *Engine) getGroupByGUID(l *lua.State) int {
	guid, err := stackArgs{l: l}.Uint64(1)
	if err != nil {
		raiseArgument(l, 0, err)
		return 0
	}
	if e.registry == nil {
		l.PushNil()
		return 1
	}
	pushGroup(l, e.registry.FindGroup(world.ObjectGuid(guid)))
	return 1
}

// createPacket builds an empty packet: CreatePacket(opcode[, size]).
func createPacket(l *lua.State) int {
	opcode := lua.CheckInteger(l, 1)
	if opcode < 0 || opcode > 0xFFFF {
		lua.ArgumentError(l, 1, "opcode out of range")
		return 0
	}
	size := lua.OptInteger(l, 2, 0)
	pushPacket(l, world.NewPacket(uint16(opcode), size))
	return 1
}
