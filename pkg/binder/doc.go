// Package binder fills request structs from HTTP requests.
//
// Each binder reads one struct tag:
//
//	type LoginRequest struct {
//		Username string `form:"username"`
//		Password string `form:"password"`
//	}
//
//	type ValidateRequest struct {
//		Field string `path:"field"`
//	}
//
// Form accepts application/x-www-form-urlencoded and multipart/form-data
// bodies. Path takes an extractor such as chi.URLParam. Supported field
// types are strings, integers, floats, bools, slices and pointers of those.
// Fields without a tag are left untouched and "-" skips a field.
package binder
