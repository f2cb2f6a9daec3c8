package model

const (
	RoleDonor    = "doador"
	StatusActive = "ativo"
)

// Remote field names of the users table.
const (
	UserName         = "nome"
	UserEmail        = "email"
	UserPassword     = "senha"
	UserPasswordHash = "senha_hash"
	UserRole         = "tipo_usuario"
	UserStatus       = "status"
	UserRegisteredAt = "data_cadastro"
)

// User is the record written on registration. The password is only ever kept hashed.
type User struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	RegisteredAt string
}

func (u User) Fields() Fields {
	return Fields{
		UserName:         u.Name,
		UserEmail:        u.Email,
		UserPasswordHash: u.PasswordHash,
		UserRole:         u.Role,
		UserStatus:       u.Status,
		UserRegisteredAt: u.RegisteredAt,
	}
}

// UserSummary is what login returns to clients.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"tipo_usuario"`
}
