package model

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	FieldWage       = "wage"
	FieldYear       = "year"
	FieldNbAdults   = "nbAdults"
	FieldNbChildren = "nbChildren"
)
