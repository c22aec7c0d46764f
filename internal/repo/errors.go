package repo

import (
	"errors"
	"fmt"
)

// ErrStorage: общая ошибка хранилища пользователей: файл не читается, не пишется или повреждён.
var ErrStorage = errors.New("user storage error")

// StorageError описывает сбой конкретной операции хранилища.
type StorageError struct {
	Op   string // load | save | init
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s users: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s users %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is позволяет проверять errors.Is(err, ErrStorage).
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func storageErr(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}
