package response

import "cinema-client/internal/data/entity"

type UserProfileResponse struct {
	User entity.UserProfile `json:"user"`
}
