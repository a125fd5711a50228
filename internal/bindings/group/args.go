package group

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/partybind/internal/platform/errors"
	"github.com/louisbranch/partybind/internal/world"
)

// Args reads positional script arguments. Positions start at 1 and do not
// include the group subject.
//
// Handle accessors return nil for anything they cannot resolve. Scalar
// accessors return an argument error when the position is absent or holds the
// wrong kind of value.
type Args interface {
	Player(pos int) world.Player
	Packet(pos int) *world.Packet
	Bool(pos int) (bool, error)
	OptBool(pos int, def bool) (bool, error)
	String(pos int) (string, error)
	Uint64(pos int) (uint64, error)
	Unsigned(pos int) (uint32, error)
}

// Context is everything a binding may consult besides the group itself.
type Context struct {
	Args     Args
	Registry world.Registry
}

func (c Context) findPlayer(guid world.ObjectGuid) world.Player {
	if c.Registry == nil {
		return nil
	}
	return c.Registry.FindPlayer(guid)
}

func (c Context) findPlayerByName(name string) world.Player {
	if c.Registry == nil {
		return nil
	}
	return c.Registry.FindPlayerByName(name)
}

// Argument type names used in error messages.
const (
	TypeBoolean  = "boolean"
	TypeString   = "string"
	TypeNumber   = "number"
	TypeNoValue  = "no value"
	TypeNil      = "nil"
	TypeUserData = "userdata"
)

// MissingArgument reports an absent mandatory argument.
func MissingArgument(pos int, expected string) error {
	return apperrors.WithMetadata(apperrors.CodeArgumentMissing,
		fmt.Sprintf("%s expected, got %s", expected, TypeNoValue),
		map[string]string{
			"position": strconv.Itoa(pos),
			"expected": expected,
			"got":      TypeNoValue,
		})
}

// WrongArgument reports an argument of the wrong kind.
func WrongArgument(pos int, expected, got string) error {
	return apperrors.WithMetadata(apperrors.CodeArgumentType,
		fmt.Sprintf("%s expected, got %s", expected, got),
		map[string]string{
			"position": strconv.Itoa(pos),
			"expected": expected,
			"got":      got,
		})
}

// ArgumentPosition returns the position recorded on an argument error, or 0.
func ArgumentPosition(err error) int {
	pos, convErr := strconv.Atoi(apperrors.Metadata(err, "position"))
	if convErr != nil {
		return 0
	}
	return pos
}

// List is an Args backed by plain Go values, for callers that dispatch
// bindings without a script engine.
//
// Integers and world.ObjectGuid satisfy the unsigned accessors; integers and
// floats are accepted where a string is expected, as scripts coerce them.
type List []any

func (l List) at(pos int) (any, bool) {
	if pos < 1 || pos > len(l) {
		return nil, false
	}
	return l[pos-1], true
}

func (l List) Player(pos int) world.Player {
	v, _ := l.at(pos)
	player, ok := v.(world.Player)
	if !ok || player == nil {
		return nil
	}
	return player
}

func (l List) Packet(pos int) *world.Packet {
	v, _ := l.at(pos)
	packet, _ := v.(*world.Packet)
	return packet
}

func (l List) Bool(pos int) (bool, error) {
	v, ok := l.at(pos)
	if !ok {
		return false, MissingArgument(pos, TypeBoolean)
	}
	b, ok := v.(bool)
	if !ok {
		return false, WrongArgument(pos, TypeBoolean, typeName(v))
	}
	return b, nil
}

func (l List) OptBool(pos int, def bool) (bool, error) {
	v, ok := l.at(pos)
	if !ok || v == nil {
		return def, nil
	}
	return l.Bool(pos)
}

func (l List) String(pos int) (string, error) {
	v, ok := l.at(pos)
	if !ok {
		return "", MissingArgument(pos, TypeString)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'g', 14, 64), nil
	default:
		return "", WrongArgument(pos, TypeString, typeName(v))
	}
}

func (l List) Uint64(pos int) (uint64, error) {
	v, ok := l.at(pos)
	if !ok {
		return 0, MissingArgument(pos, TypeNumber)
	}
	switch n := v.(type) {
	case world.ObjectGuid:
		return uint64(n), nil
	case uint64:
		return n, nil
	case uint32:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case int:
		return uint64(n), nil
	case int64:
		return uint64(n), nil
	default:
		return 0, WrongArgument(pos, TypeNumber, typeName(v))
	}
}

func (l List) Unsigned(pos int) (uint32, error) {
	n, err := l.Uint64(pos)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return TypeNil
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case int, int64, uint8, uint32, uint64, float64, world.ObjectGuid:
		return TypeNumber
	default:
		return TypeUserData
	}
}
