package model

type CollectionPoint struct {
	ID          string   `json:"id"`
	Name        string   `json:"nome_local"`
	Address     string   `json:"endereco"`
	Phone       string   `json:"telefone"`
	Email       string   `json:"email"`
	Hours       string   `json:"horario_funcionamento"`
	Responsible string   `json:"responsavel"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}
