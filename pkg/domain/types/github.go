package types

import "log/slog"

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppSecret     string
	GitHubAppPrivateKey string
	GitHubRepoID        int64
	UserID              string
	StateToken          string
	DatabaseDSN         string
)

func (x GitHubAppSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppSecret) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

// DatabaseDSN carries the service-role credential, so it never appears in logs.
func (x DatabaseDSN) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x StateToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}
