package user

import "context"

// ExistenceChecker exposes only "does this user exist" to other slices.
type ExistenceChecker struct {
	repository Repository
}

func NewExistenceChecker(repository Repository) *ExistenceChecker {
	return &ExistenceChecker{repository: repository}
}

func (c *ExistenceChecker) UserExists(ctx context.Context, userID string) (bool, error) {
	user, err := c.repository.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
