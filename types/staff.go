package types

// ServiceAttribute tags a staff member with the class of equipment they may service.
//
// The attribute encodes a fixed business rule inherited from operations
// management; see the roster package for the policy table that maps
// equipment types to required attributes.
type ServiceAttribute string

const (
	// AttributeHardware marks staff cleared to service workstation hardware.
	AttributeHardware ServiceAttribute = "hardware"

	// AttributePeripheral marks staff cleared to service peripherals (keyboards).
	AttributePeripheral ServiceAttribute = "peripheral"

	// AttributeAny marks staff eligible for every equipment type.
	AttributeAny ServiceAttribute = "any"
)

// StaffMember is one worker on the roster.
//
// Staff records are owned by the admin-management side of the application;
// this library treats them as read-only input.
type StaffMember struct {
	// ID is the stable staff identifier (the bot uses the messenger user ID).
	ID string `json:"id" bson:"_id" yaml:"id"`

	// Name is the display name used in reports and task listings.
	Name string `json:"name" bson:"name" yaml:"name"`

	// Attribute is the servicing-eligibility tag for this staff member.
	// An empty attribute excludes the member from type-restricted equipment
	// but not from wildcard equipment.
	Attribute ServiceAttribute `json:"attribute" bson:"attribute" yaml:"attribute"`

	// Active indicates whether the member currently participates in allocation.
	Active bool `json:"active" bson:"active" yaml:"active"`
}
