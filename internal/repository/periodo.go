package repository

import "time"

// Periodo is an inclusive time window. A nil *Periodo means "no filter".
type Periodo struct {
	Inicio time.Time
	Fim    time.Time
}
