package core

import pcore "colony/pkg/core"

// Controllable is the contract the front ends need from the engine: a name
// for titles, the grid size for layout and a parameter snapshot for panels.
type Controllable interface {
	Name() string
	Size() pcore.Size
	Parameters() ParameterSnapshot
}
