package usecase

import (
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute writes the starter files into root and returns the config path.
func (uc *InitWorkspace) Execute(root string, force bool) (string, error) {
	return uc.initializer.Init(root, force)
}
