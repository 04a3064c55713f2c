package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

// storeError marks a repository failure as the store being unavailable.
// A not-found reported by a write that just succeeded means the store
// contradicts itself and is reported as internal.
func storeError(op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
	}
	return fmt.Errorf("%w: %s: %v", common.ErrorUnavailable, op, err)
}
