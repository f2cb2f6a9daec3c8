package model

type KnowledgeEntry struct {
	Question string   `json:"pergunta"`
	Keywords []string `json:"palavras_chave"`
	Answer   string   `json:"resposta"`
}
