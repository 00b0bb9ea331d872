package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Roles               []Role               `gorm:"many2many:user_roles" json:"roles,omitempty"`
	MemberProfile       *MemberProfile       `gorm:"foreignKey:UserID" json:"member_profile,omitempty"`
	ProfessionalProfile *ProfessionalProfile `gorm:"foreignKey:UserID" json:"professional_profile,omitempty"`
	AffiliateProfile    *AffiliateProfile    `gorm:"foreignKey:UserID" json:"affiliate_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.RoleName == roleName {
			return true
		}
	}
	return false
}

// RoleNames returns the user's role names for token claims.
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		names[i] = role.RoleName
	}
	return names
}
