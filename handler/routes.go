package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"varal-dos-sonhos/services"
	"varal-dos-sonhos/store"
)

type Handlers struct {
	Catalog  *services.CatalogService
	Users    *services.UserService
	Adoption *services.AdoptionService
}

func (h *Handlers) Routes() []Route {
	return []Route{
		{Name: "health", Path: "/api/health", Method: http.MethodGet, Handle: h.handleHealth},
		{Name: "eventos", Path: "/api/eventos", Method: http.MethodGet, Handle: h.handleFeaturedEvents},
		{Name: "eventos-todos", Path: "/api/eventos-todos", Method: http.MethodGet, Handle: h.handleAllEvents},
		{Name: "evento-detalhe", Path: "/api/evento-detalhe", Method: http.MethodGet, Handle: h.handleEventDetail},
		{Name: "cloudinho", Path: "/api/cloudinho", Method: http.MethodGet, Handle: h.handleKnowledgeBase},
		{Name: "cloudinho", Path: "/api/cloudinho", Method: http.MethodPost, Handle: h.handleAsk},
		{Name: "pontosdecoleta", Path: "/api/pontosdecoleta", Method: http.MethodGet, Handle: h.handleCollectionPoints},
		{Name: "cartinhas", Path: "/api/cartinhas", Method: http.MethodGet, Handle: h.handleLetters},
		{Name: "cadastro", Path: "/api/cadastro", Method: http.MethodPost, Handle: h.handleRegister},
		{Name: "login", Path: "/api/login", Method: http.MethodPost, Handle: h.handleLogin},
		{Name: "adocoes", Path: "/api/adocoes", Method: http.MethodPost, Handle: h.handleAdoption},
	}
}

func ok(v any, err error) (int, any, error) {
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, v, nil
}

func (h *Handlers) handleHealth(ctx context.Context, req *Request) (int, any, error) {
	return http.StatusOK, map[string]string{"status": "ok"}, nil
}

func (h *Handlers) handleFeaturedEvents(ctx context.Context, req *Request) (int, any, error) {
	return ok(h.Catalog.FeaturedEvents(ctx))
}

func (h *Handlers) handleAllEvents(ctx context.Context, req *Request) (int, any, error) {
	return ok(h.Catalog.AllEvents(ctx))
}

func (h *Handlers) handleEventDetail(ctx context.Context, req *Request) (int, any, error) {
	id := req.Query.Get("id")
	if id == "" {
		return clientError(http.StatusBadRequest, "ID do evento não informado")
	}

	event, err := h.Catalog.Event(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, map[string]string{"erro": "Evento não encontrado."}, nil
	}
	return ok(event, err)
}

func (h *Handlers) handleLetters(ctx context.Context, req *Request) (int, any, error) {
	return ok(h.Catalog.AvailableLetters(ctx))
}

func (h *Handlers) handleCollectionPoints(ctx context.Context, req *Request) (int, any, error) {
	return ok(h.Catalog.CollectionPoints(ctx))
}

func (h *Handlers) handleKnowledgeBase(ctx context.Context, req *Request) (int, any, error) {
	return ok(h.Catalog.KnowledgeBase(ctx))
}

func (h *Handlers) handleAsk(ctx context.Context, req *Request) (int, any, error) {
	body, err := readBody(req.Body)
	if err != nil {
		return malformedBody()
	}

	answer, err := h.Catalog.Ask(ctx, body.str("mensagem"))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, map[string]string{"resposta": answer}, nil
}

func (h *Handlers) handleRegister(ctx context.Context, req *Request) (int, any, error) {
	body, err := readBody(req.Body)
	if err != nil {
		return malformedBody()
	}

	id, err := h.Users.Register(ctx, body.str("nome"), body.str("email"), body.str("senha"))
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return clientError(http.StatusBadRequest, "Campos obrigatórios faltando.")
	case errors.Is(err, services.ErrPasswordTooLong):
		return clientError(http.StatusBadRequest, "Senha muito longa.")
	case errors.Is(err, services.ErrEmailTaken):
		return clientError(http.StatusConflict, "E-mail já cadastrado.")
	case err != nil:
		return 0, nil, err
	}

	return http.StatusOK, map[string]string{"message": "Usuário cadastrado com sucesso.", "id": id}, nil
}

func (h *Handlers) handleLogin(ctx context.Context, req *Request) (int, any, error) {
	body, err := readBody(req.Body)
	if err != nil {
		return malformedBody()
	}

	user, err := h.Users.Login(ctx, body.str("email"), body.str("senha"))
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return clientError(http.StatusBadRequest, "Email e senha obrigatórios.")
	case errors.Is(err, services.ErrUserNotFound):
		return clientError(http.StatusUnauthorized, "Usuário não encontrado.")
	case errors.Is(err, services.ErrWrongPassword):
		return clientError(http.StatusUnauthorized, "Senha incorreta.")
	case err != nil:
		return 0, nil, err
	}

	return http.StatusOK, map[string]any{"success": true, "usuario": user}, nil
}

func (h *Handlers) handleAdoption(ctx context.Context, req *Request) (int, any, error) {
	body, err := readBody(req.Body)
	if err != nil {
		return malformedBody()
	}

	items, valid := adoptionItems(body["cartinhas"])
	if !valid {
		return clientError(http.StatusBadRequest, "Dados inválidos.")
	}

	err = h.Adoption.Adopt(ctx, body.str("usuarioEmail"), items)
	if errors.Is(err, services.ErrInvalidAdoption) {
		return clientError(http.StatusBadRequest, "Dados inválidos.")
	}
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, map[string]any{"success": true, "message": "Adoções registradas com sucesso!"}, nil
}

// adoptionItems reads the letters array. Items without a letter id are passed
// through with an empty id so the service rejects the whole request.
func adoptionItems(v any) ([]services.AdoptionItem, bool) {
	list, isList := v.([]any)
	if !isList {
		return nil, false
	}

	items := make([]services.AdoptionItem, 0, len(list))
	for _, raw := range list {
		entry, isObject := raw.(map[string]any)
		if !isObject {
			return nil, false
		}
		letter := idValue(entry["id_cartinha"])
		if letter == "" {
			letter = idValue(entry["id"])
		}
		items = append(items, services.AdoptionItem{
			LetterID:        letter,
			CollectionPoint: idValue(entry["ponto_coleta"]),
		})
	}
	return items, true
}

func idValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
