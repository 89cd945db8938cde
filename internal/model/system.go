package model

// VersionInfo describes the running application and its database schema.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  string `json:"db_version"`
}
