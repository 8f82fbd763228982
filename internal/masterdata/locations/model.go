package locations

// Location groups cost centers and accounts of a company by site.
type Location struct {
	Name           string `json:"name"`
	LocationName   string `json:"location_name"`
	LocationNumber string `json:"custom_location_number,omitempty"`
	AccountNumber  string `json:"custom_account_number,omitempty"`
	Company        string `json:"company"`
}

// LocationForm is the payload accepted when creating a location.
type LocationForm struct {
	LocationName   string `json:"location_name" validate:"required"`
	LocationNumber string `json:"custom_location_number"`
	AccountNumber  string `json:"custom_account_number"`
	Company        string `json:"company" validate:"required"`
}
