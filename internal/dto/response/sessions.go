package response

import "cinema-client/internal/data/entity"

type SessionsResponse struct {
	Data       []entity.Session `json:"data"`
	Pagination PaginationMeta   `json:"pagination"`
}
