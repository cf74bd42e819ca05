package orm

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/paychan/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. For example
// *[]*Channel is a valid ModelSlicePtr.
type ModelSlicePtr interface{}

func marshal(m Model) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	return raw, nil
}

func unmarshal(raw []byte, dest Model) error {
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

// appendModel loads raw into a fresh instance of the slice element type and
// appends it to the slice pointed by dest.
func appendModel(dest ModelSlicePtr, raw []byte) error {
	slice := reflect.ValueOf(dest)
	if slice.Kind() != reflect.Ptr || slice.Elem().Kind() != reflect.Slice {
		return errors.Wrapf(errors.ErrType, "%T is not a pointer to a slice", dest)
	}
	elemType := slice.Elem().Type().Elem()

	var m Model
	switch elemType.Kind() {
	case reflect.Ptr:
		inst, ok := reflect.New(elemType.Elem()).Interface().(Model)
		if !ok {
			return errors.Wrapf(errors.ErrType, "%s is not a model", elemType)
		}
		m = inst
	default:
		return errors.Wrapf(errors.ErrType, "slice element %s must be a pointer", elemType)
	}
	if err := unmarshal(raw, m); err != nil {
		return err
	}
	slice.Elem().Set(reflect.Append(slice.Elem(), reflect.ValueOf(m)))
	return nil
}
