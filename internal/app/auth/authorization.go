package auth

import (
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	pkgauth "github.com/yigit/eduadmin/internal/pkg/auth"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID int64
	Role   models.Role
	Login  string
}

// TokenVerifier validates access tokens.
type TokenVerifier interface {
	ValidateAccessToken(token string) (*pkgauth.Claims, error)
}

// VerifyAccessToken turns an Authorization header into a Principal.
func VerifyAccessToken(verifier TokenVerifier, authHeader string) (*Principal, error) {
	token, err := pkgauth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, err
	}

	claims, err := verifier.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &Principal{
		UserID: claims.UserID,
		Role:   claims.Role,
		Login:  claims.Login,
	}, nil
}

// IsSuperAdmin checks if the principal is a super admin
func IsSuperAdmin(p *Principal) bool {
	return p != nil && p.Role == models.RoleSuperAdmin
}

// IsAdmin checks if the principal is an admin or a super admin
func IsAdmin(p *Principal) bool {
	return p != nil && p.Role.IsAdmin()
}

func IsTeacher(p *Principal) bool {
	return p != nil && p.Role == models.RoleTeacher
}

func IsStudent(p *Principal) bool {
	return p != nil && p.Role == models.RoleStudent
}

// IsStaff is true for admins and teachers.
func IsStaff(p *Principal) bool {
	return IsAdmin(p) || IsTeacher(p)
}

// IsUserSelf reports whether the principal is the user with the given id in
// the table that role belongs to. Admin and super admin share one table.
func IsUserSelf(p *Principal, role models.Role, id int64) bool {
	if p == nil || p.UserID != id {
		return false
	}
	if role.IsAdmin() {
		return p.Role.IsAdmin()
	}
	return p.Role == role
}

func IsSelfOrSuperAdmin(p *Principal, role models.Role, id int64) bool {
	return IsUserSelf(p, role, id) || IsSuperAdmin(p)
}

func IsAdminOrSelf(p *Principal, role models.Role, id int64) bool {
	return IsAdmin(p) || IsUserSelf(p, role, id)
}

// CanManageTest is true for admins and for the teacher who owns the test.
func CanManageTest(p *Principal, test *models.Test) bool {
	if IsAdmin(p) {
		return true
	}
	return IsTeacher(p) && test != nil && test.IsOwnedBy(p.UserID)
}

// RequireAuthenticated fails with ErrUnauthorized when there is no principal.
func RequireAuthenticated(p *Principal) error {
	if p == nil {
		return apperrors.ErrUnauthorized
	}
	return nil
}

func RequireSuperAdmin(p *Principal) error {
	return checkAllowed(p, IsSuperAdmin(p), "super admin privileges required")
}

func RequireAdmin(p *Principal) error {
	return checkAllowed(p, IsAdmin(p), "admin privileges required")
}

func RequireStaff(p *Principal) error {
	return checkAllowed(p, IsStaff(p), "admin or teacher privileges required")
}

func RequireSelfOrSuperAdmin(p *Principal, role models.Role, id int64) error {
	return checkAllowed(p, IsSelfOrSuperAdmin(p, role, id), "you can only access your own account")
}

func RequireAdminOrSelf(p *Principal, role models.Role, id int64) error {
	return checkAllowed(p, IsAdminOrSelf(p, role, id), "you can only access your own account")
}

func RequireTestManager(p *Principal, test *models.Test) error {
	return checkAllowed(p, CanManageTest(p, test), "only an admin or the owning teacher can modify this test")
}

func checkAllowed(p *Principal, allowed bool, message string) error {
	if p == nil {
		return apperrors.ErrUnauthorized
	}
	if !allowed {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}
