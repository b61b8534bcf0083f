package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/schooltest/internal/apperr"
	"github.com/lshigami/schooltest/internal/auth"
	"gorm.io/gorm"
)

// notFoundOr maps gorm.ErrRecordNotFound to a NotFound app error and passes
// anything else through wrapped with op.
func notFoundOr(err error, op string, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.KindNotFound, op, format, args...)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireStaff(p auth.Principal, op string) error {
	if !p.IsStaff() {
		return apperr.New(apperr.KindPermissionDenied, op, "role %q may not do this", p.Role)
	}
	return nil
}

// requireSelfOrStaff lets students act only on their own records.
func requireSelfOrStaff(p auth.Principal, studentID, op string) error {
	if p.IsStaff() {
		return nil
	}
	if p.Role == auth.RoleStudent && p.SubjectID == studentID {
		return nil
	}
	return apperr.New(apperr.KindPermissionDenied, op, "student %s may not access records of %s", p.SubjectID, studentID)
}
