// models/service_type.go
package models

// ServiceType classifies what a sitter does, e.g. boarding or walking.
type ServiceType struct {
	ID              string `bson:"id" json:"service_type_id"`
	ShortName       string `bson:"short_name" json:"short_name"`
	FullDescription string `bson:"full_description" json:"full_description"`
}

// PetType classifies the animal being cared for.
type PetType struct {
	ID          string `bson:"id" json:"pet_type_id"`
	TypeName    string `bson:"type_name" json:"type_name"`
	Description string `bson:"description" json:"description"`
}
