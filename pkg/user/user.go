package user

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Email       string
	Role        Role
}
