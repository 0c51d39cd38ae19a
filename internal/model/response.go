package model

type TaxResult struct {
	Amount float64 `json:"Amount"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
