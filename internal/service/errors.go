package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: объект не существует либо у пользователя нет нужной связи с ним
	// (не владелец, не арендатор). Транспорт отвечает 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest: запрос корректен по форме, но отклонён правилами. Транспорт отвечает 400.
	ErrInvalidRequest = errors.New("invalid request")
)

// Error несёт вид ошибки и сообщение для клиента
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap позволяет сравнивать через errors.Is(err, ErrNotFound)
func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error {
	return &Error{Kind: ErrInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// ErrorKind maps service errors to a stable logging label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "unexpected"
	}
}
