package http

import (
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

func servicesErr(kind string) error {
	switch kind {
	case "unauthorized":
		return common.ErrorUnauthorized
	case "invalid":
		return fmt.Errorf("%w: amount too large", common.ErrInvalidArgument)
	case "notfound":
		return common.ErrorNotFound
	case "unavailable":
		return fmt.Errorf("%w: find user: dial tcp 10.0.0.1:5432", common.ErrorUnavailable)
	default:
		return fmt.Errorf("%w: collision", common.ErrorInternal)
	}
}

func fmtErr(err error) error {
	return fmt.Errorf("handler: %w", err)
}
