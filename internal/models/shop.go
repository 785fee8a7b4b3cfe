package models

// ShopEntry represents a physical shop location sourced from the backend's
// custom-entity store. Field names match the flow schema exactly.
type ShopEntry struct {
	ID        string  `json:"id"`
	Address   string  `json:"Address"`
	Alias     string  `json:"Alias"`
	Longitude float64 `json:"Longitude"`
	Latitude  float64 `json:"Latitude"`
}
