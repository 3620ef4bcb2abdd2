package response

import "cinema-client/internal/data/entity"

type FilmsResponse struct {
	Data       []entity.Film  `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type FilmResponse struct {
	Data entity.Film `json:"data"`
}
