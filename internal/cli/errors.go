package cli

import (
	"errors"
	"fmt"
	"strconv"
)

var errLoggedOut = errors.New("not logged in; run `nota login --username <name>` first")

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %s", kind, s)
	}
	return id, nil
}
