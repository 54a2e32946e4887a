package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict with current state")
	ErrUpstream     = errors.New("upstream service error")
	ErrNetwork      = errors.New("network error")
)

// Kind clasifica un error para que la capa HTTP elija el status sin inspeccionar mensajes.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindUpstream     Kind = "upstream"
	KindNetwork      Kind = "network"
	KindInternal     Kind = "internal"
)

var kindSentinel = map[Kind]error{
	KindValidation:   ErrInvalidInput,
	KindNotFound:     ErrNotFound,
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
	KindConflict:     ErrConflict,
	KindUpstream:     ErrUpstream,
	KindNetwork:      ErrNetwork,
}

// Error es el único tipo de error que devuelven los servicios de aplicación.
// Status solo se llena para KindUpstream (status HTTP devuelto por el backend) y Body
// conserva el cuerpo crudo para reenviarlo sin cambios.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap expone la causa; si no hay causa, el sentinel del Kind para que errors.Is funcione.
func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return kindSentinel[e.Kind]
}

// Is permite errors.Is(err, domain.ErrNotFound) aunque Err sea una causa de infraestructura.
func (e *Error) Is(target error) bool {
	return kindSentinel[e.Kind] == target && target != nil
}

// Validation error de entrada (HTTP 400).
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound recurso inexistente (HTTP 404).
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict transición no permitida por el estado actual (HTTP 409).
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Forbidden acceso denegado (HTTP 403).
func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized credenciales ausentes o inválidas (HTTP 401).
func Unauthorized(format string, args ...any) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Upstream respuesta no 2xx del backend o de la pasarela.
func Upstream(status int, message string, body []byte) error {
	return &Error{Kind: KindUpstream, Message: message, Status: status, Body: body}
}

// Network fallo de red o de parseo hacia un servicio externo.
func Network(err error, message string) error {
	return &Error{Kind: KindNetwork, Message: message, Err: err}
}

// Internal envuelve un error de infraestructura (DB, Redis).
func Internal(err error, message string) error {
	return &Error{Kind: KindInternal, Message: message + ": " + err.Error(), Err: err}
}

// KindOf devuelve el Kind de err, KindInternal si no es un *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	}
	return KindInternal
}

// Wrap conserva un *Error existente; cualquier otro error se trata como interno.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return Internal(err, message)
}
