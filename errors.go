package depot

import (
	"fmt"
	"reflect"
)

type NotFoundError struct {
	Type reflect.Type
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %v", e.Type)
}

type AlreadyExclusiveError struct {
	Type reflect.Type
}

func (e AlreadyExclusiveError) Error() string {
	return fmt.Sprintf("value already exclusively borrowed: %v", e.Type)
}

type AlreadySharedError struct {
	Type reflect.Type
}

func (e AlreadySharedError) Error() string {
	return fmt.Sprintf("value already has shared borrows: %v", e.Type)
}
