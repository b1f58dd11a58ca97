package entity

import (
	"fmt"

	"github.com/rocketscienceinc/warehouse-backend/internal/apperror"
)

// KeeperCount - number of keeper pieces.
const KeeperCount = 3

// Role - a side entitled to act.
type Role string

const (
	NoRole  Role = ""
	Mouse   Role = "mouse"
	Keeper1 Role = "keeper1"
	Keeper2 Role = "keeper2"
	Keeper3 Role = "keeper3"
)

// turnOrder is used both for placement and for every round.
var turnOrder = [...]Role{Mouse, Keeper1, Keeper2, Keeper3}

// ParseRole - converts a wire role name into a Role.
func ParseRole(name string) (Role, error) {
	for _, role := range turnOrder {
		if string(role) == name {
			return role, nil
		}
	}

	return NoRole, fmt.Errorf("%w: %q", apperror.ErrUnknownRole, name)
}

func (that Role) IsKeeper() bool {
	return that.KeeperIndex() >= 0
}

// KeeperIndex - index into Game.KeeperPositions, or -1 for non-keepers.
func (that Role) KeeperIndex() int {
	switch that {
	case Keeper1:
		return 0
	case Keeper2:
		return 1
	case Keeper3:
		return 2
	default:
		return -1
	}
}

// Next - the role acting after this one within a round, NoRole after Keeper3.
func (that Role) Next() Role {
	for i, role := range turnOrder {
		if role == that && i+1 < len(turnOrder) {
			return turnOrder[i+1]
		}
	}

	return NoRole
}

// KeeperRole - role of the keeper stored at index.
func KeeperRole(index int) Role {
	return turnOrder[index+1]
}

// DisplayName - human readable role name used in prompts.
func (that Role) DisplayName() string {
	switch that {
	case Mouse:
		return "Mouse"
	case Keeper1, Keeper2, Keeper3:
		return fmt.Sprintf("Keeper%d", that.KeeperIndex()+1)
	default:
		return ""
	}
}
