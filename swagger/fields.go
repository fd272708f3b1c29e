package swagger

import (
	"github.com/speakeasy-api/oasgraph/parsenode"
)

type fieldHandler[T any] func(target T, n parsenode.Node) error

func stringField[T any](field func(T) *string) fieldHandler[T] {
	return func(target T, n parsenode.Node) error {
		v, err := n.GetScalarValue()
		if err != nil {
			return err
		}
		*field(target) = v
		return nil
	}
}

func boolField[T any](field func(T) *bool) fieldHandler[T] {
	return func(target T, n parsenode.Node) error {
		v, err := parsenode.GetBool(n)
		if err != nil {
			return err
		}
		*field(target) = v
		return nil
	}
}

func floatField[T any](field func(T) **float64) fieldHandler[T] {
	return func(target T, n parsenode.Node) error {
		v, err := parsenode.GetFloat(n)
		if err != nil {
			return err
		}
		*field(target) = v
		return nil
	}
}

func intField[T any](field func(T) **int64) fieldHandler[T] {
	return func(target T, n parsenode.Node) error {
		v, err := parsenode.GetInt(n)
		if err != nil {
			return err
		}
		*field(target) = v
		return nil
	}
}

func stringListField[T any](field func(T) *[]string) fieldHandler[T] {
	return func(target T, n parsenode.Node) error {
		v, err := stringList(n)
		if err != nil {
			return err
		}
		*field(target) = v
		return nil
	}
}
