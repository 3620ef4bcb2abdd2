package response

import "cinema-client/internal/data/entity"

type ReviewsResponse struct {
	Data       []entity.Review `json:"data"`
	Pagination PaginationMeta  `json:"pagination"`
}

type SeatCategoriesResponse struct {
	Success    bool                  `json:"success"`
	Data       []entity.SeatCategory `json:"data"`
	Pagination PaginationMeta        `json:"pagination"`
}
