package lib

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/near/borsh-go"
)

/* This file implements the byte and JSON codecs shared by all modules; state records are borsh encoded */

// Marshal() serializes a state record into bytes; pointers are flattened first so the
// encoding is the bare record, symmetric with Unmarshal() which reads into a pointer
func Marshal(message any) ([]byte, ErrorI) {
	bz, err := borsh.Serialize(reflect.Indirect(reflect.ValueOf(message)).Interface())
	if err != nil {
		return nil, ErrMarshal(err)
	}
	return bz, nil
}

// Unmarshal() deserializes bytes into a state record pointer
func Unmarshal(data []byte, ptr any) ErrorI {
	if err := borsh.Deserialize(ptr, data); err != nil {
		return ErrUnmarshal(err)
	}
	return nil
}

// MarshalJSON() serializes a message into a JSON byte slice
func MarshalJSON(message any) ([]byte, ErrorI) {
	bz, err := json.Marshal(message)
	if err != nil {
		return nil, ErrJSONMarshal(err)
	}
	return bz, nil
}

// UnmarshalJSON() deserializes a JSON byte slice into a message pointer
func UnmarshalJSON(data []byte, ptr any) ErrorI {
	if err := json.Unmarshal(data, ptr); err != nil {
		return ErrJSONUnmarshal(err)
	}
	return nil
}

// UnmarshalJSONReader() deserializes a JSON stream into a message pointer
func UnmarshalJSONReader(r io.Reader, ptr any) ErrorI {
	if err := json.NewDecoder(r).Decode(ptr); err != nil {
		return ErrJSONUnmarshal(err)
	}
	return nil
}

// MarshalJSONIndent() serializes a message into an indented JSON byte slice
func MarshalJSONIndent(message any) ([]byte, ErrorI) {
	bz, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return nil, ErrJSONMarshal(err)
	}
	return bz, nil
}

// MarshalJSONIndentString() serializes a message into an indented JSON string
func MarshalJSONIndentString(message any) (string, ErrorI) {
	bz, err := MarshalJSONIndent(message)
	if err != nil {
		return "", err
	}
	return string(bz), nil
}
