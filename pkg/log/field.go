package log

import "time"

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value any
}

func Str(key, value string) Field                    { return Field{Key: key, Value: value} }
func Int(key string, value int) Field                { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field            { return Field{Key: key, Value: value} }
func Uint64(key string, value uint64) Field          { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field              { return Field{Key: key, Value: value} }
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value.String()} }
func Any(key string, value any) Field                { return Field{Key: key, Value: value} }

// Component tags the record with the emitting component.
func Component(name string) Field { return Field{Key: ComponentKey, Value: name} }

// Err stores the error message under "error". A nil error yields an empty value.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: ""}
	}
	return Field{Key: "error", Value: err.Error()}
}
