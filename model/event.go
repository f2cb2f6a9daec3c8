package model

const DefaultEventImage = "/imagens/evento-padrao.jpg"

type Event struct {
	ID          string `json:"id"`
	Name        string `json:"nome"`
	StartDate   string `json:"data_inicio"`
	EndDate     string `json:"data_fim"`
	Description string `json:"descricao"`
	Location    string `json:"local"`
	Status      string `json:"status"`
	Image       string `json:"imagem"`
	Featured    bool   `json:"destaque_home"`
}
