package usecase

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// ErrSyncInProgress sinaliza contenção do lock advisory — um no-op
// deliberado, não uma falha.
var ErrSyncInProgress = &DomainError{
	Code:    "SYNC_EM_ANDAMENTO",
	Message: "sincronização já em andamento",
}
