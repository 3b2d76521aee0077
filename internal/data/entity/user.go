package entity

type User struct {
	Base
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	IsStaff      bool   `db:"is_staff"`
	IsActive     bool   `db:"is_active"`
}
