// Package types defines the interface, regulator and hot-plug state types of
// the board, the collaborator contracts the power command consumes
// (Registry, PowerController), and the standard errors shared between them.
package types
