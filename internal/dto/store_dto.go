package dto

type LocationInput struct {
	Name    string `json:"name"    validate:"required,min=1,max=120"`
	Address string `json:"address" validate:"max=250"`
	Phone   string `json:"phone"   validate:"max=30"`
}

type CreateStoreRequest struct {
	StoreName     string          `json:"store_name"    validate:"required,min=2,max=120"`
	StoreType     string          `json:"store_type"    validate:"required,oneof=retail restaurant cafe bar grocery salon other"`
	// One request-size ceiling for both location paths. Plan-specific
	// limits (the free demo's 1000) are enforced at plan selection.
	LocationCount int             `json:"locationCount" validate:"omitempty,min=1,max=10000"`
	Locations     []LocationInput `json:"locations"     validate:"omitempty,max=10000,dive"`
}

type CreateStoreResponse struct {
	StoreID    string `json:"store_id"`
	Slug       string `json:"slug"`
	RedirectTo string `json:"redirectTo"`
}
