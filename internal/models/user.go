package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleClient       UserRole = "client"
	UserRoleSupportAgent UserRole = "support_agent"
	UserRoleAdmin        UserRole = "admin"
)

// ValidRoles lists every role a stored user may carry.
var ValidRoles = []UserRole{UserRoleClient, UserRoleSupportAgent, UserRoleAdmin}

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName      string             `json:"first_name" bson:"first_name" validate:"required,min=2,max=50"`
	LastName       string             `json:"last_name" bson:"last_name" validate:"required,min=2,max=50"`
	Email          string             `json:"email" bson:"email" validate:"required,email"`
	Phone          string             `json:"phone" bson:"phone"`
	Password       string             `json:"-" bson:"password"`
	Role           UserRole           `json:"role" bson:"role" default:"client"`
	DateOfBirth    *time.Time         `json:"date_of_birth" bson:"date_of_birth"`
	DrivingLicence string             `json:"driving_licence" bson:"driving_licence"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
	IsActive       bool               `json:"is_active" bson:"is_active" default:"true"`
	LastLoginAt    *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsStaff() bool {
	return u.Role == UserRoleAdmin || u.Role == UserRoleSupportAgent
}
