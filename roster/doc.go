// Package roster provides the eligibility policy that restricts which staff
// may service which equipment type.
//
// The policy is deliberately data, not code: it is a lookup table from
// equipment type to required servicing attribute, with a wildcard attribute
// matching every type. The default table reproduces the operational rule
// the bot has always run with (workstations require the hardware grade,
// keyboards the peripheral grade, mice accept anyone). Whether that
// attribute assignment is a permanent business policy or a historical
// workaround is an open product question; change it through configuration,
// not by editing this package.
package roster
