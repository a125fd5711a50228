package luascript

import (
	"strconv"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/partybind/internal/bindings/group"
	"github.com/louisbranch/partybind/internal/world"
)

const (
	groupTypeName  = group.TypeName
	playerTypeName = "Player"
	packetTypeName = "WorldPacket"
	guidTypeName   = "ObjectGuid"
)

func (e *Engine) registerTypes() {
	registerType(e.state, groupTypeName, e.groupMethods(), []lua.RegistryFunction{
		{Name: "__eq", Function: groupEqual},
		{Name: "__tostring", Function: groupString},
	})
	registerType(e.state, playerTypeName, e.playerMethods(), []lua.RegistryFunction{
		{Name: "__eq", Function: playerEqual},
		{Name: "__tostring", Function: playerString},
	})
	registerType(e.state, packetTypeName, packetMethods, nil)
	registerType(e.state, guidTypeName, guidMethods, []lua.RegistryFunction{
		{Name: "__eq", Function: guidEqual},
		{Name: "__tostring", Function: guidString},
	})
}

func registerType(l *lua.State, name string, methods, meta []lua.RegistryFunction) {
	lua.NewMetaTable(l, name)
	l.NewTable()
	lua.SetFunctions(l, methods, 0)
	l.SetField(-2, "__index")
	if len(meta) > 0 {
		lua.SetFunctions(l, meta, 0)
	}
	l.Pop(1)
}

func (e *Engine) groupMethods() []lua.RegistryFunction {
	names := group.Names()
	methods := make([]lua.RegistryFunction, 0, len(names))
	for _, name := range names {
		binding, _ := group.Lookup(name)
		methods = append(methods, lua.RegistryFunction{Name: name, Function: e.dispatch(name, binding)})
	}
	return methods
}

func pushGroup(l *lua.State, g world.Group) {
	if g == nil {
		l.PushNil()
		return
	}
	l.PushUserData(g)
	lua.SetMetaTableNamed(l, groupTypeName)
}

func pushPlayer(l *lua.State, p world.Player) {
	if p == nil {
		l.PushNil()
		return
	}
	l.PushUserData(p)
	lua.SetMetaTableNamed(l, playerTypeName)
}

func pushPacket(l *lua.State, p *world.Packet) {
	l.PushUserData(p)
	lua.SetMetaTableNamed(l, packetTypeName)
}

func pushGuid(l *lua.State, g world.ObjectGuid) {
	l.PushUserData(g)
	lua.SetMetaTableNamed(l, guidTypeName)
}

func checkGroup(l *lua.State, index int) world.Group {
	ud := lua.CheckUserData(l, index, groupTypeName)
	if g, ok := ud.(world.Group); ok && g != nil {
		return g
	}
	lua.ArgumentError(l, index, "Group expected")
	return nil
}

func checkPlayer(l *lua.State, index int) world.Player {
	ud := lua.CheckUserData(l, index, playerTypeName)
	if p, ok := ud.(world.Player); ok && p != nil {
		return p
	}
	lua.ArgumentError(l, index, "Player expected")
	return nil
}

func checkPacket(l *lua.State, index int) *world.Packet {
	ud := lua.CheckUserData(l, index, packetTypeName)
	if p, ok := ud.(*world.Packet); ok && p != nil {
		return p
	}
	lua.ArgumentError(l, index, "WorldPacket expected")
	return nil
}

func checkGuid(l *lua.State, index int) world.ObjectGuid {
	ud := lua.CheckUserData(l, index, guidTypeName)
	g, _ := ud.(world.ObjectGuid)
	return g
}

func groupEqual(l *lua.State) int {
	a, aok := l.ToUserData(1).(world.Group)
	b, bok := l.ToUserData(2).(world.Group)
	l.PushBoolean(aok && bok && a.GUID() == b.GUID())
	return 1
}

func groupString(l *lua.State) int {
	l.PushString(checkGroup(l, 1).GUID().String())
	return 1
}

func (e *Engine) playerMethods() []lua.RegistryFunction {
	return []lua.RegistryFunction{
		{Name: "GetName", Function: func(l *lua.State) int {
			l.PushString(checkPlayer(l, 1).Name())
			return 1
		}},
		{Name: "GetGUID", Function: func(l *lua.State) int {
			pushGuid(l, checkPlayer(l, 1).GUID())
			return 1
		}},
		{Name: "GetGroup", Function: func(l *lua.State) int {
			pushGroup(l, checkPlayer(l, 1).Group())
			return 1
		}},
		{Name: "IsInWorld", Function: func(l *lua.State) int {
			l.PushBoolean(checkPlayer(l, 1).HasSession())
			return 1
		}},
	}
}

func playerEqual(l *lua.State) int {
	a, aok := l.ToUserData(1).(world.Player)
	b, bok := l.ToUserData(2).(world.Player)
	l.PushBoolean(aok && bok && a.GUID() == b.GUID())
	return 1
}

func playerString(l *lua.State) int {
	p := checkPlayer(l, 1)
	l.PushString(p.Name() + " (" + p.GUID().String() + ")")
	return 1
}

var packetMethods = []lua.RegistryFunction{
	{Name: "GetOpcode", Function: packetOpcode},
	{Name: "GetSize", Function: packetSize},
	{Name: "WriteUByte", Function: packetWriteUByte},
	{Name: "WriteULong", Function: packetWriteULong},
	{Name: "WriteFloat", Function: packetWriteFloat},
	{Name: "WriteGUID", Function: packetWriteGUID},
	{Name: "WriteString", Function: packetWriteString},
}

func packetOpcode(l *lua.State) int {
	l.PushInteger(int(checkPacket(l, 1).Opcode()))
	return 1
}

func packetSize(l *lua.State) int {
	l.PushInteger(checkPacket(l, 1).Size())
	return 1
}

func packetWriteUByte(l *lua.State) int {
	p := checkPacket(l, 1)
	p.WriteUint8(uint8(lua.CheckInteger(l, 2)))
	return 0
}

func packetWriteULong(l *lua.State) int {
	p := checkPacket(l, 1)
	v, err := stackArgs{l: l, base: 1}.Unsigned(1)
	if err != nil {
		raiseArgument(l, 1, err)
		return 0
	}
	p.WriteUint32(v)
	return 0
}

func packetWriteFloat(l *lua.State) int {
	p := checkPacket(l, 1)
	p.WriteFloat(float32(lua.CheckNumber(l, 2)))
	return 0
}

func packetWriteGUID(l *lua.State) int {
	p := checkPacket(l, 1)
	v, err := stackArgs{l: l, base: 1}.Uint64(1)
	if err != nil {
		raiseArgument(l, 1, err)
		return 0
	}
	p.WriteGuid(world.ObjectGuid(v))
	return 0
}

func packetWriteString(l *lua.State) int {
	p := checkPacket(l, 1)
	p.WriteString(lua.CheckString(l, 2))
	return 0
}

var guidMethods = []lua.RegistryFunction{
	{Name: "GetCounter", Function: func(l *lua.State) int {
		l.PushInteger(int(checkGuid(l, 1).Counter()))
		return 1
	}},
	{Name: "IsEmpty", Function: func(l *lua.State) int {
		l.PushBoolean(checkGuid(l, 1).IsEmpty())
		return 1
	}},
	{Name: "IsPlayer", Function: func(l *lua.State) int {
		l.PushBoolean(checkGuid(l, 1).IsPlayer())
		return 1
	}},
	{Name: "IsGroup", Function: func(l *lua.State) int {
		l.PushBoolean(checkGuid(l, 1).IsGroup())
		return 1
	}},
}

func guidEqual(l *lua.State) int {
	a, aok := l.ToUserData(1).(world.ObjectGuid)
	b, bok := l.ToUserData(2).(world.ObjectGuid)
	l.PushBoolean(aok && bok && a == b)
	return 1
}

// guidString renders the decimal form, which Uint64 arguments accept back.
func guidString(l *lua.State) int {
	l.PushString(strconv.FormatUint(uint64(checkGuid(l, 1)), 10))
	return 1
}
