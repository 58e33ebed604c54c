package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son condiciones
// recuperables por el caller; la capa HTTP los traduce a códigos 4xx.
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrDuplicate                = errors.New("recurso duplicado")
	ErrInvalidTransition        = errors.New("transición de estado de tarjeta no permitida")
	ErrInvalidBatch             = errors.New("lote inválido: alguna tarjeta no está en el estado esperado")
	ErrIncompleteReconciliation = errors.New("conciliación incompleta: los seriales no cubren el lote original")
	ErrAlreadyProcessed         = errors.New("la operación ya fue procesada")
	ErrInvalidType              = errors.New("el mensaje no es de tipo aprobación")
	ErrUnauthorized             = errors.New("no autorizado")
)
