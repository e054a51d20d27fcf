package user

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/biztime"
)

// User is the account aggregate. Password hashing happens in the
// infrastructure layer; the entity only stores the hash.
type User struct {
	id           uint
	email        *vo.Email
	name         string
	passwordHash string
	role         authorization.UserRole
	baseIDs      []uint
	active       bool
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	lastLoginAt  *time.Time
}

func NewUser(email *vo.Email, name, passwordHash string, role authorization.UserRole) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		baseIDs:      []uint{},
		active:       true,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uint,
	email *vo.Email,
	name string,
	passwordHash string,
	role authorization.UserRole,
	baseIDs []uint,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
	lastLoginAt *time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	if baseIDs == nil {
		baseIDs = []uint{}
	}

	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		baseIDs:      baseIDs,
		active:       active,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		lastLoginAt:  lastLoginAt,
	}, nil
}

func (u *User) ID() uint                        { return u.id }
func (u *User) Email() *vo.Email                { return u.email }
func (u *User) Name() string                    { return u.name }
func (u *User) PasswordHash() string            { return u.passwordHash }
func (u *User) Role() authorization.UserRole    { return u.role }
func (u *User) IsActive() bool                  { return u.active }
func (u *User) Version() int                    { return u.version }
func (u *User) CreatedAt() time.Time            { return u.createdAt }
func (u *User) UpdatedAt() time.Time            { return u.updatedAt }
func (u *User) LastLoginAt() *time.Time         { return u.lastLoginAt }

func (u *User) BaseIDs() []uint {
	idsCopy := make([]uint, len(u.baseIDs))
	copy(idsCopy, u.baseIDs)
	return idsCopy
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) UpdateName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	u.name = name
	u.touch()
	return nil
}

func (u *User) ChangeRole(role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	if u.role == role {
		return nil
	}
	u.role = role
	u.touch()
	return nil
}

func (u *User) ChangePasswordHash(hash string) error {
	if len(hash) == 0 {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

func (u *User) Deactivate() {
	if !u.active {
		return
	}
	u.active = false
	u.touch()
}

func (u *User) Activate() {
	if u.active {
		return
	}
	u.active = true
	u.touch()
}

func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
}

// AssignToBase adds a base membership. Adding an existing membership is a noop.
func (u *User) AssignToBase(baseID uint) error {
	if baseID == 0 {
		return fmt.Errorf("base ID cannot be zero")
	}
	for _, id := range u.baseIDs {
		if id == baseID {
			return nil
		}
	}
	u.baseIDs = append(u.baseIDs, baseID)
	u.touch()
	return nil
}

func (u *User) RemoveFromBase(baseID uint) {
	for i, id := range u.baseIDs {
		if id == baseID {
			u.baseIDs = append(u.baseIDs[:i], u.baseIDs[i+1:]...)
			u.touch()
			return
		}
	}
}

func (u *User) BelongsToBase(baseID uint) bool {
	for _, id := range u.baseIDs {
		if id == baseID {
			return true
		}
	}
	return false
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
	u.version++
}
