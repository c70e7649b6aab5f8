package user

type Role string

const (
	RoleSeeker Role = "seeker"
	RoleOwner  Role = "owner"
)

func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleOwner
}

// Account is the public view of a registered user. It never carries the
// credential and is what the session snapshot stores.
type Account struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"userType"`
	Phone string `json:"phone,omitempty"`
}

// StoredAccount is a registry entry. The password is kept as plain text.
type StoredAccount struct {
	Account
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

func (u ProfileUpdate) Apply(account *Account) {
	if u.Name != nil {
		account.Name = *u.Name
	}
	if u.Email != nil {
		account.Email = *u.Email
	}
	if u.Phone != nil {
		account.Phone = *u.Phone
	}
}
