package entity

// User usuario de referencedata. Solo se usa para resolver el correo
// del creador de una orden al notificar.
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Email     string
	Active    bool
}

// DisplayName nombre para mostrar en notificaciones.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	}
	return u.Username
}
