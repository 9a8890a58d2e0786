package calendario

type CreateEventoRequest struct {
	NomeGravacao    string `json:"nome_gravacao" binding:"required"`
	DataEvento      string `json:"data_evento" binding:"required"`
	HorarioInicio   string `json:"horario_inicio"`
	HorarioFim      string `json:"horario_fim"`
	Tema            string `json:"tema"`
	Cor             string `json:"cor"`
	ApresentadorIDs []uint `json:"apresentadorIds"`
}

// UpdateEventoRequest is a partial update; absent fields stay untouched. A
// present apresentadorIds list (even empty) replaces the whole set.
type UpdateEventoRequest struct {
	NomeGravacao    *string `json:"nome_gravacao"`
	DataEvento      *string `json:"data_evento"`
	HorarioInicio   *string `json:"horario_inicio"`
	HorarioFim      *string `json:"horario_fim"`
	Tema            *string `json:"tema"`
	Cor             *string `json:"cor"`
	ApresentadorIDs *[]uint `json:"apresentadorIds"`
}

// EventoDropdownItem is the reduced shape consumed by client selects.
type EventoDropdownItem struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
}
