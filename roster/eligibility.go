package roster

import "github.com/nik45114/upkeep/types"

// Policy maps each equipment type to the servicing attribute it requires.
//
// A staff member is eligible for an equipment type when their attribute is
// types.AttributeAny, or equals the required attribute. Equipment types
// missing from the policy accept every staff member. Staff with an empty or
// unknown attribute are excluded from type-restricted equipment but remain
// eligible for unrestricted types.
type Policy map[types.EquipmentType]types.ServiceAttribute

// DefaultPolicy returns the standing eligibility table for the fixed
// equipment catalog.
//
// Returns:
//   - Policy: workstation -> hardware, keyboard -> peripheral, mouse -> any
func DefaultPolicy() Policy {
	return Policy{
		types.EquipmentWorkstation: types.AttributeHardware,
		types.EquipmentKeyboard:    types.AttributePeripheral,
		types.EquipmentMouse:       types.AttributeAny,
	}
}

// Eligible returns the subset of the roster permitted to service the given
// equipment type. Inactive staff are always excluded. Input order is
// preserved; the result is a new slice.
//
// Parameters:
//   - equipment: Equipment type being allocated
//   - staff: Full staff roster
//
// Returns:
//   - []types.StaffMember: Eligible, active staff in roster order
func (p Policy) Eligible(equipment types.EquipmentType, staff []types.StaffMember) []types.StaffMember {
	required, restricted := p[equipment]

	eligible := make([]types.StaffMember, 0, len(staff))
	for _, member := range staff {
		if !member.Active {
			continue
		}
		if restricted && required != types.AttributeAny &&
			member.Attribute != required && member.Attribute != types.AttributeAny {
			continue
		}
		eligible = append(eligible, member)
	}

	return eligible
}

// EligibleIDs is Eligible projected down to staff IDs, the shape the
// allocation strategies consume.
func (p Policy) EligibleIDs(equipment types.EquipmentType, staff []types.StaffMember) []string {
	members := p.Eligible(equipment, staff)
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	return ids
}
