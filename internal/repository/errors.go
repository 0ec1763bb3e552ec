package repository

import "errors"

// ErrNotFound возвращается, когда команда не затронула ни одной строки
// или ссылается на несуществующую запись
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicate возвращается при нарушении уникального индекса
var ErrDuplicate = errors.New("repository: duplicate")
