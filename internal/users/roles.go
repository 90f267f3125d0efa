package users

// Role is always looked up from the store for authorization decisions;
// client-supplied roles are only honoured at registration.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleArtist   Role = "ARTIST"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) String() string {
	return string(r)
}
