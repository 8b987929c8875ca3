package utils

import (
	"reflect"
	"strings"
)

// NormalizeDTO trims string fields on a pointer-to-struct DTO before
// validation, so " admin " and "admin" are the same username.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		switch f.Kind() {
		case reflect.String:
			if f.CanSet() {
				f.SetString(strings.TrimSpace(f.String()))
			}
		case reflect.Ptr:
			if !f.IsNil() && f.Elem().Kind() == reflect.String && f.Elem().CanSet() {
				f.Elem().SetString(strings.TrimSpace(f.Elem().String()))
			}
		}
	}
}
