package service

// Ator is the authenticated user performing an operation. It is passed
// explicitly into every mutating call and recorded in history and logs.
type Ator struct {
	Nome string
	Role string
}
