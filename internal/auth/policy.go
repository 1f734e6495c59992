package auth

import apperrors "razzrel/internal/errors"

// Policy decides whether a principal may proceed. It must be side-effect free.
type Policy func(p Identity) error

// AdminOnly allows principals holding the admin role.
func AdminOnly() Policy {
	return func(p Identity) error {
		if !p.IsAdmin() {
			return apperrors.ErrAdminRequired
		}
		return nil
	}
}

// AdminOrOwner allows admins and the owner of the resource.
func AdminOrOwner(ownerID uint) Policy {
	return func(p Identity) error {
		if p.IsAdmin() || p.UserID == ownerID {
			return nil
		}
		return apperrors.ErrForbidden
	}
}

// Authorize evaluates policy for p.
func Authorize(p Identity, policy Policy) error {
	return policy(p)
}
