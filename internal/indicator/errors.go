package indicator

import "github.com/rxtech-lab/argo-dashboard/pkg/errors"

func invalidType(name string, expected string) error {
	return errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected %s", name, expected)
}

func invalidPeriod(name string, got int) error {
	return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, got)
}
