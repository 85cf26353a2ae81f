// models/user.go
package models

import "time"

// Role identifies which side of the marketplace an account is on.
type Role string

const (
	RoleMember Role = "member"
	RoleSitter Role = "sitter"
	RoleAdmin  Role = "admin"
)

// VerificationStatus is the admin review state of a sitter's identity documents.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (v VerificationStatus) Valid() bool {
	switch v {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

// Account is a member or sitter login.
type Account struct {
	ID                 string             `bson:"id" json:"id"`
	Role               Role               `bson:"role" json:"role"`
	Email              string             `bson:"email" json:"email"`
	PasswordHash       string             `bson:"password_hash" json:"-"`
	Name               string             `bson:"name" json:"name"`
	PhoneNumber        string             `bson:"phone_number" json:"phone_number"`
	FCMToken           string             `bson:"fcm_token,omitempty" json:"-"`
	TokenHash          string             `bson:"token_hash,omitempty" json:"-"`
	VerificationStatus VerificationStatus `bson:"verification_status,omitempty" json:"verification_status,omitempty"`
	FaceImage          string             `bson:"face_image,omitempty" json:"face_image,omitempty"`
	IDCardImage        string             `bson:"id_card_image,omitempty" json:"id_card_image,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// RegisterInput is the account registration payload.
type RegisterInput struct {
	Role        Role   `json:"role" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}
