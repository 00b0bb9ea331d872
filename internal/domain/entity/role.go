package entity

// Role represents a user role in the system. A user may hold several
// roles at once (users <-> roles is many-to-many).
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"many2many:user_roles" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin        = 1
	RoleIDMember       = 2
	RoleIDProfessional = 3
	RoleIDAffiliate    = 4
	RoleIDSystem       = 5
)

// RoleNames constants
const (
	RoleAdmin        = "admin"
	RoleMember       = "member"
	RoleProfessional = "professional"
	RoleAffiliate    = "affiliate"
	RoleSystem       = "system"
)
