package mapper

import "varal-dos-sonhos/model"

var event = struct {
	name, start, end, description, location, status, image, featured Chain
}{
	name:        Names("nome_evento", "nome"),
	start:       Names("data_inicio"),
	end:         Names("data_fim"),
	description: Names("descricao"),
	location:    Names("local", "escola_local"),
	status:      Names("status"),
	image:       Chain{Attachment("imagem_evento"), Attachment("imagem")},
	featured:    Names("destaque_home"),
}

func Event(r model.Record) model.Event {
	f := r.Fields
	return model.Event{
		ID:          r.ID,
		Name:        event.name.String(f, "Evento sem nome"),
		StartDate:   event.start.String(f, ""),
		EndDate:     event.end.String(f, ""),
		Description: event.description.String(f, ""),
		Location:    event.location.String(f, ""),
		Status:      event.status.String(f, ""),
		Image:       event.image.String(f, model.DefaultEventImage),
		Featured:    event.featured.Bool(f),
	}
}

var letter = struct {
	name, age, wish, point, image, status Chain
}{
	name:   Names("nome_crianca", "primeiro_nome"),
	age:    Names("idade"),
	wish:   Names("sonho"),
	point:  Names("ponto_coleta"),
	image:  Chain{Attachment("imagem_cartinha")},
	status: Names("status"),
}

func Letter(r model.Record) model.Letter {
	f := r.Fields
	return model.Letter{
		ID:              r.ID,
		Name:            letter.name.String(f, "Anônimo"),
		Age:             letter.age.Int(f),
		Wish:            letter.wish.String(f, ""),
		CollectionPoint: letter.point.String(f, ""),
		Image:           letter.image.String(f, ""),
		Status:          letter.status.String(f, model.LetterAvailable),
	}
}

var point = struct {
	name, address, phone, email, hours, responsible, lat, lng Chain
}{
	name:        Names("nome_local"),
	address:     Names("endereco"),
	phone:       Names("telefone"),
	email:       Names("email"),
	hours:       Names("horario_funcionamento"),
	responsible: Names("responsavel"),
	lat:         Names("lat", "latitude"),
	lng:         Names("lng", "longitude"),
}

func CollectionPoint(r model.Record) model.CollectionPoint {
	f := r.Fields
	return model.CollectionPoint{
		ID:          r.ID,
		Name:        point.name.String(f, ""),
		Address:     point.address.String(f, ""),
		Phone:       point.phone.String(f, ""),
		Email:       point.email.String(f, ""),
		Hours:       point.hours.String(f, ""),
		Responsible: point.responsible.String(f, ""),
		Lat:         point.lat.Float(f),
		Lng:         point.lng.Float(f),
	}
}

var knowledge = struct {
	question, keywords, answer Chain
}{
	question: Names("pergunta"),
	keywords: Names("palavras_chave"),
	answer:   Names("resposta"),
}

func KnowledgeEntry(r model.Record) model.KnowledgeEntry {
	f := r.Fields
	return model.KnowledgeEntry{
		Question: knowledge.question.String(f, ""),
		Keywords: knowledge.keywords.Strings(f),
		Answer:   knowledge.answer.String(f, ""),
	}
}

var user = struct {
	name, email, role Chain
}{
	name:  Names(model.UserName),
	email: Names(model.UserEmail),
	role:  Names(model.UserRole),
}

// UserSummary never reads password fields.
func UserSummary(r model.Record) model.UserSummary {
	f := r.Fields
	return model.UserSummary{
		ID:    r.ID,
		Name:  user.name.String(f, ""),
		Email: user.email.String(f, ""),
		Role:  user.role.String(f, model.RoleDonor),
	}
}

// All maps every record with fn. The result is never nil so it encodes as [].
func All[T any](records []model.Record, fn func(model.Record) T) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		out = append(out, fn(r))
	}
	return out
}
