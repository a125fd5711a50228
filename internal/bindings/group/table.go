package group

import (
	"fmt"
	"maps"
	"slices"

	apperrors "github.com/louisbranch/partybind/internal/platform/errors"
	"github.com/louisbranch/partybind/internal/world"
)

// TypeName is the script-visible name of the group type.
const TypeName = "Group"

var bindings = map[string]Binding{
	"GetMembers":          getMembers,
	"GetLeaderGUID":       getLeaderGUID,
	"GetLeader":           getLeader,
	"GetGUID":             getGUID,
	"ChangeLeader":        changeLeader,
	"IsLeader":            isLeader,
	"SendPacket":          sendPacket,
	"AddInvite":           addInvite,
	"RemoveMember":        removeMember,
	"Disband":             disband,
	"IsFull":              isFull,
	"isLFGGroup":          isLFGGroup,
	"isRaidGroup":         isRaidGroup,
	"isBGGroup":           isBGGroup,
	"isBFGroup":           isBFGroup,
	"IsMember":            isMember,
	"IsAssistant":         isAssistant,
	"SameSubGroup":        sameSubGroup,
	"HasFreeSlotSubGroup": hasFreeSlotSubGroup,
	"GetMemberGUID":       getMemberGUID,
	"GetMembersCount":     getMembersCount,
	"ConvertToLFG":        convertToLFG,
	"ConvertToRaid":       convertToRaid,
	"ChangeMembersGroup":  changeMembersGroup,
	"GetMemberGroup":      getMemberGroup,
}

// Lookup returns the binding registered under name.
func Lookup(name string) (Binding, bool) {
	b, ok := bindings[name]
	return b, ok
}

// Names returns every registered binding name in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(bindings))
}

// Call dispatches name against g. Unknown names are reported as an argument
// error so callers can surface them the same way as a malformed argument.
func Call(name string, ctx Context, g world.Group) Result {
	b, ok := Lookup(name)
	if !ok {
		return Fail(apperrors.WithMetadata(apperrors.CodeUnknownBinding,
			fmt.Sprintf("unknown group method %q", name),
			map[string]string{"method": name}))
	}
	return b(ctx, g)
}
