package models

// SitterService is a sitter's bookable offering ("job"): one service type for one pet type at a price.
type SitterService struct {
	ID            string  `bson:"id" json:"sitter_service_id"`
	SitterID      string  `bson:"sitter_id" json:"sitter_id"`
	ServiceTypeID string  `bson:"service_type_id" json:"service_type_id"`
	PetTypeID     string  `bson:"pet_type_id" json:"pet_type_id"`
	JobName       string  `bson:"job_name" json:"job_name"`
	Price         float64 `bson:"price" json:"price"`
}

// SitterServiceView is a sitter service with its taxonomy names resolved.
type SitterServiceView struct {
	SitterService
	ServiceTypeName string `json:"short_name"`
	PetTypeName     string `json:"type_name"`
}
