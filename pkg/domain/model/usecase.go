package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/runsynapse/ghsync/pkg/domain/types"
)

// CompleteSetupInput carries the query parameters GitHub appends to the
// post-installation redirect.
type CompleteSetupInput struct {
	InstallID   types.GitHubAppInstallID
	SetupAction string
	State       types.StateToken
}

func (x *CompleteSetupInput) Validate() error {
	if x.InstallID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "installation ID is empty")
	}
	if x.SetupAction != "install" {
		return goerr.Wrap(types.ErrValidationFailed, "unexpected setup action",
			goerr.V("setup_action", x.SetupAction))
	}
	if x.State == "" {
		return goerr.Wrap(types.ErrValidationFailed, "state token is empty")
	}
	return nil
}
