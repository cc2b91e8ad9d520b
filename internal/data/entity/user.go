package entity

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
	RoleFamily  UserRole = "family"
)

// ValidRole mengecek apakah string adalah role yang dikenal
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RolePatient, RoleDoctor, RoleFamily:
		return true
	}
	return false
}

// User adalah identity record. Password nil menandakan akun OAuth
// (login Google, tanpa password). Role nil sampai user memilih lewat
// role-selection step.
type User struct {
	Base
	Username string    `db:"username"`
	Password *string   `db:"password"`
	Role     *UserRole `db:"role"`
}

// InsertUser adalah subset field yang boleh diisi saat create.
type InsertUser struct {
	Username string
	Password *string
}
