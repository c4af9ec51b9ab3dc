// Package gzipbinding lets gin bind gzip compressed json bodies
package gzipbinding

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin/binding"
)

var ErrInvalidRequest = errors.New("invalid request")

// Validatable is implemented by bodies that carry their own validation rules
type Validatable interface {
	Validate() error
}

// JSON binds gzip compressed json bodies
type JSON struct{}

var _ binding.BindingBody = JSON{}

func (JSON) Name() string {
	return "gzipjson"
}

func (JSON) Bind(req *http.Request, obj interface{}) error {
	if req == nil || req.Body == nil {
		return ErrInvalidRequest
	}

	return decode(req.Body, obj)
}

func (JSON) BindBody(body []byte, obj interface{}) error {
	return decode(bytes.NewReader(body), obj)
}

func decode(r io.Reader, obj interface{}) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()

	if err := json.NewDecoder(zr).Decode(obj); err != nil {
		return err
	}

	return validate(obj)
}

// validate prefers the rules of the body itself over gin's binding tags
func validate(obj interface{}) error {
	if v, ok := obj.(Validatable); ok {
		return v.Validate()
	}

	if binding.Validator == nil {
		return nil
	}

	return binding.Validator.ValidateStruct(obj)
}
