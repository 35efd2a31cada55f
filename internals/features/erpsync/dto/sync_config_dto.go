package dto

import (
	"absensiku_backend/internals/features/erpsync/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UpsertSyncConfigRequest struct {
	EndpointURL     string         `json:"endpoint_url" validate:"required,url"`
	Database        string         `json:"database" validate:"required"`
	Username        string         `json:"username" validate:"required"`
	Password        string         `json:"password" validate:"required"`
	LookupField     string         `json:"lookup_field" validate:"required,oneof=email national_id code"`
	RemoteCompanyID int64          `json:"remote_company_id" validate:"required,gt=0"`
	Enabled         *bool          `json:"enabled"`
	Extra           datatypes.JSON `json:"extra"`
}

type SyncConfigResponse struct {
	SyncConfigID    uuid.UUID      `json:"sync_config_id"`
	CompanyID       uuid.UUID      `json:"company_id"`
	EndpointURL     string         `json:"endpoint_url"`
	Database        string         `json:"database"`
	Username        string         `json:"username"`
	LookupField     string         `json:"lookup_field"`
	RemoteCompanyID int64          `json:"remote_company_id"`
	Enabled         bool           `json:"enabled"`
	Extra           datatypes.JSON `json:"extra,omitempty"`
}

// Password sengaja tidak pernah ikut response.
func ToSyncConfigResponse(m *model.SyncConfigModel) SyncConfigResponse {
	return SyncConfigResponse{
		SyncConfigID:    m.SyncConfigID,
		CompanyID:       m.SyncConfigCompanyID,
		EndpointURL:     m.SyncConfigEndpointURL,
		Database:        m.SyncConfigDatabase,
		Username:        m.SyncConfigUsername,
		LookupField:     m.SyncConfigLookupField,
		RemoteCompanyID: m.SyncConfigRemoteCompanyID,
		Enabled:         m.SyncConfigEnabled,
		Extra:           m.SyncConfigExtra,
	}
}
