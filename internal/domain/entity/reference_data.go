package entity

// Entidades de referencia: viven en el servicio referencedata / stockmanagement
// y aquí solo se leen.

// Orderable producto ordenable. NetContent es el tamaño de empaque en unidades de dispensación.
type Orderable struct {
	ID              string
	ProductCode     string
	FullProductName string
	NetContent      int64
	UseVVM          bool
}

// FacilityType tipo de instalación.
type FacilityType struct {
	ID   string
	Code string
}

// Facility instalación (almacén, centro de salud).
type Facility struct {
	ID     string
	Code   string
	Name   string
	Active bool
	Type   FacilityType
}

// Program programa de salud.
type Program struct {
	ID   string
	Code string
	Name string
}

// Node nodo de stock management; si RefDataFacility, ReferenceID es el id de la instalación.
type Node struct {
	ID              string
	ReferenceID     string
	RefDataFacility bool
}

// ValidSourceDestination asignación (programa, tipo de instalación) → nodo válido.
type ValidSourceDestination struct {
	ID             string
	ProgramID      string
	FacilityTypeID string
	Name           string
	Node           Node
}

// MatchesFacility indica si el nodo corresponde a la instalación dada.
func (v ValidSourceDestination) MatchesFacility(facilityID string) bool {
	return v.Node.RefDataFacility && v.Node.ReferenceID == facilityID
}
