package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDealNotFound = errors.New("deal not found")
	ErrUserNotFound = errors.New("user not found")
	ErrStorage      = errors.New("storage error")
)

// StorageError 包装底层存储读写失败，errors.Is(err, ErrStorage) 可识别
type StorageError struct {
	Op  string // "load" / "save" 等
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
