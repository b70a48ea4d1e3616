package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as informações do usuário carregadas no token de acesso.
// Os tokens são emitidos pelo serviço de contas da organização.
type Claims struct {
	UserID     int    `json:"user_id"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	UserRoleID int    `json:"user_role_id"`
	jwt.RegisteredClaims
}
