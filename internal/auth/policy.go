package auth

import "coursedeck/internal/models"

// CanMutate is the single ownership decision used by every course and video
// mutation path: admins may mutate anything, everyone else only resources
// they authored. Videos resolve authorship through their parent course.
func CanMutate(id Identity, resourceAuthorID string) bool {
	if id.Role == models.RoleAdmin {
		return true
	}
	return id.ID == resourceAuthorID
}
