package auth

import "context"

// Principal usuario autenticado de la petición en curso (claims del JWT).
type Principal struct {
	UserID         string
	HomeFacilityID string
	Role           string
}

type principalKey struct{}

// WithPrincipal devuelve un contexto que lleva al usuario autenticado.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext devuelve el usuario autenticado, si lo hay.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.UserID != ""
}

// UserID id del usuario autenticado o "" si la petición es anónima.
func UserID(ctx context.Context) string {
	p, _ := FromContext(ctx)
	return p.UserID
}
