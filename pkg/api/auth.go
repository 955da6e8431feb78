package api

// CredentialsRequest is the body of POST /api/register and /api/login
type CredentialsRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде, хешируется на сервере
}

// LogoutRequest is the body of POST /api/logout
type LogoutRequest struct {
	Username string `json:"username"`
	AuthKey  string `json:"auth_key"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Status string `json:"status"` // всегда "error"
	Error  string `json:"error"`  // описание ошибки
}
