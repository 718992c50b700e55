package usecase

// Taxonomia de erro do core. Cada tipo carrega um Code estável pro front
// diferenciar a mensagem ("this lead was just purchased" vs erro genérico).

// GuardViolation: transição tentada pelo ator errado ou a partir do status
// errado. Nenhuma mudança parcial de estado.
type GuardViolation struct {
	Code    string
	Message string
}

func (e *GuardViolation) Error() string {
	return e.Message
}

func IsGuardViolation(err error) bool {
	_, ok := err.(*GuardViolation)
	return ok
}

// ConflictError: a transição perdeu uma corrida (outro buyer completou a
// compra primeiro, outro request pending já existe).
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func IsConflictError(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}

// CollaboratorFailure: gateway de checkout ou dispatcher de notificação
// falhou. Nunca reverte estado já commitado; quando o estado já avançou,
// vira degraded-success, não erro de transição.
type CollaboratorFailure struct {
	Code    string
	Message string
	Err     error
}

func (e *CollaboratorFailure) Error() string {
	return e.Message
}

func (e *CollaboratorFailure) Unwrap() error {
	return e.Err
}

func IsCollaboratorFailure(err error) bool {
	_, ok := err.(*CollaboratorFailure)
	return ok
}

// TechnicalError: falha de infraestrutura (banco fora, etc).
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
