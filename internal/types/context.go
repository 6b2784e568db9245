package types

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	EmpresaIDKey contextKey = "empresa_id"
	SessionKey   contextKey = "session"
)
