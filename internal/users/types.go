package users

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles. Admin is capitalized in stored documents; that casing is part of
// the data contract.
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "Admin"
)

// User is the account document. Timestamps are stored as ISO-8601 strings.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email       string             `bson:"email" json:"email"`
	DisplayName *string            `bson:"displayName" json:"displayName"`
	PhotoURL    *string            `bson:"photoURL" json:"photoURL"`
	Role        string             `bson:"role" json:"role"`
	CreatedAt   string             `bson:"created_at" json:"created_at"`
	LastLogIn   string             `bson:"last_log_in" json:"last_log_in"`
}
