package model

const LetterAvailable = "disponível"

// Letter is a child's wish card ("cartinha").
type Letter struct {
	ID              string `json:"id"`
	Name            string `json:"nome"`
	Age             *int   `json:"idade"`
	Wish            string `json:"sonho"`
	CollectionPoint string `json:"ponto_coleta"`
	Image           string `json:"imagem_cartinha"`
	Status          string `json:"status"`
}
