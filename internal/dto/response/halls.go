package response

import "cinema-client/internal/data/entity"

type HallResponse struct {
	Hall entity.Hall `json:"hall"`
}

type HallPlanResponse struct {
	HallPlan entity.HallPlan `json:"hallPlan"`
}
