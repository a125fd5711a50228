package luascript

import (
	"github.com/Shopify/go-lua"

	"github.com/louisbranch/partybind/internal/bindings/group"
	"github.com/louisbranch/partybind/internal/world"
)

// stackArgs reads binding arguments from the Lua stack. Binding position p
// lives at stack index p+base; base is 1 for methods, whose receiver occupies
// index 1, and 0 for plain functions.
type stackArgs struct {
	l    *lua.State
	base int
}

func (a stackArgs) index(pos int) int { return pos + a.base }

func (a stackArgs) userData(pos int) any {
	idx := a.index(pos)
	if a.l.TypeOf(idx) != lua.TypeUserData {
		return nil
	}
	return a.l.ToUserData(idx)
}

func (a stackArgs) Player(pos int) world.Player {
	p, ok := a.userData(pos).(world.Player)
	if !ok || p == nil {
		return nil
	}
	return p
}

func (a stackArgs) Packet(pos int) *world.Packet {
	p, _ := a.userData(pos).(*world.Packet)
	return p
}

func (a stackArgs) Bool(pos int) (bool, error) {
	idx := a.index(pos)
	switch a.l.TypeOf(idx) {
	case lua.TypeBoolean:
		return a.l.ToBoolean(idx), nil
	case lua.TypeNone:
		return false, group.MissingArgument(pos, group.TypeBoolean)
	default:
		return false, group.WrongArgument(pos, group.TypeBoolean, typeName(a.l, idx))
	}
}

func (a stackArgs) OptBool(pos int, def bool) (bool, error) {
	if a.l.IsNoneOrNil(a.index(pos)) {
		return def, nil
	}
	return a.Bool(pos)
}

func (a stackArgs) String(pos int) (string, error) {
	idx := a.index(pos)
	switch a.l.TypeOf(idx) {
	case lua.TypeString, lua.TypeNumber:
		s, _ := a.l.ToString(idx)
		return s, nil
	case lua.TypeNone:
		return "", group.MissingArgument(pos, group.TypeString)
	default:
		return "", group.WrongArgument(pos, group.TypeString, typeName(a.l, idx))
	}
}

// Uint64 accepts a number, a decimal or hexadecimal string, or an
// ObjectGuid userdata. Numbers above 2^53 lose precision, so scripts should
// pass identifiers they received from the engine unchanged.
func (a stackArgs) Uint64(pos int) (uint64, error) {
	idx := a.index(pos)
	switch a.l.TypeOf(idx) {
	case lua.TypeNumber:
		n, _ := a.l.ToNumber(idx)
		return wrapUnsigned(n), nil
	case lua.TypeString:
		s, _ := a.l.ToString(idx)
		guid, err := world.ParseObjectGuid(s)
		if err != nil {
			return 0, group.WrongArgument(pos, group.TypeNumber, group.TypeString)
		}
		return uint64(guid), nil
	case lua.TypeUserData:
		if guid, ok := a.l.ToUserData(idx).(world.ObjectGuid); ok {
			return uint64(guid), nil
		}
		return 0, group.WrongArgument(pos, group.TypeNumber, typeName(a.l, idx))
	case lua.TypeNone:
		return 0, group.MissingArgument(pos, group.TypeNumber)
	default:
		return 0, group.WrongArgument(pos, group.TypeNumber, typeName(a.l, idx))
	}
}

func (a stackArgs) Unsigned(pos int) (uint32, error) {
	idx := a.index(pos)
	switch a.l.TypeOf(idx) {
	case lua.TypeNone:
		return 0, group.MissingArgument(pos, group.TypeNumber)
	case lua.TypeNumber, lua.TypeString:
		if n, ok := a.l.ToNumber(idx); ok {
			return uint32(wrapUnsigned(n)), nil
		}
	}
	return 0, group.WrongArgument(pos, group.TypeNumber, typeName(a.l, idx))
}

// wrapUnsigned converts like Lua's unsigned coercion: negative values wrap.
func wrapUnsigned(n float64) uint64 {
	if n < 0 {
		return uint64(int64(n))
	}
	return uint64(n)
}

func typeName(l *lua.State, idx int) string {
	switch l.TypeOf(idx) {
	case lua.TypeNone:
		return group.TypeNoValue
	case lua.TypeNil:
		return group.TypeNil
	case lua.TypeBoolean:
		return group.TypeBoolean
	case lua.TypeNumber:
		return group.TypeNumber
	case lua.TypeString:
		return group.TypeString
	case lua.TypeTable:
		return "table"
	case lua.TypeFunction:
		return "function"
	case lua.TypeThread:
		return "thread"
	default:
		return group.TypeUserData
	}
}
