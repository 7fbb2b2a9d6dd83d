package entity

import "time"

// Tenant un restaurante; unidad de aislamiento de datos.
type Tenant struct {
	ID        string
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
