package model

import (
	"time"

	"github.com/runsynapse/ghsync/pkg/domain/types"
)

// Installation is one GitHub App installation mirrored from webhook events.
// UserID is empty until the setup callback links the installation to a user.
type Installation struct {
	InstallID   types.GitHubAppInstallID `db:"installation_id"`
	UserID      types.UserID             `db:"user_id"`
	InstalledAt time.Time                `db:"installed_at"`
	Suspended   bool                     `db:"suspended"`
}

func (x *Installation) Linked() bool {
	return x.UserID != ""
}
