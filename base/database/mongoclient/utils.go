package mongoclient

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"
)

var ErrNotStruct = xerrors.New("selector source is not a struct")

// ToSelector turns the set fields of a struct, or pointer to one, into an
// equality selector keyed by bson tag. Zero fields and nil pointers are left
// out so a partial id matches every document sharing the set fields.
func ToSelector(id interface{}) (bson.M, error) {
	val := reflect.Indirect(reflect.ValueOf(id))
	if val.Kind() != reflect.Struct {
		return nil, xerrors.Errorf("%T: %w", id, ErrNotStruct)
	}

	selector := bson.M{}
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanInterface() || field.IsZero() {
			continue
		}
		tag, err := bsoncodec.DefaultStructTagParser(typ.Field(i))
		if err != nil {
			return nil, err
		}
		if tag.Skip {
			continue
		}
		selector[tag.Name] = reflect.Indirect(field).Interface()
	}
	return selector, nil
}
