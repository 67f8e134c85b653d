package thrift

type CreatePackageRequest struct {
	Name               string    `json:"name" validate:"required,max=120"`
	Description        string    `json:"description"`
	ContributionAmount int64     `json:"contribution_amount" validate:"required,gt=0"`
	Frequency          Frequency `json:"frequency" validate:"required"`
	Cycles             int       `json:"cycles" validate:"required,gte=1"`
}

// UpdatePackageRequest is a partial update; nil fields are left unchanged.
type UpdatePackageRequest struct {
	Name               *string    `json:"name,omitempty"`
	Description        *string    `json:"description,omitempty"`
	ContributionAmount *int64     `json:"contribution_amount,omitempty"`
	Frequency          *Frequency `json:"frequency,omitempty"`
	Cycles             *int       `json:"cycles,omitempty"`
	IsActive           *bool      `json:"is_active,omitempty"`
}
