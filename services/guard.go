package services

import (
	"time"

	"laptop-etl/models"
	"laptop-etl/storage"
	"laptop-etl/utils"
)

// Guard repairs the one-active-row-per-key invariant after a partially
// failed reconciliation. It is a safety net, not part of the normal path:
// finding anything to repair is logged as a warning.
type Guard struct {
	current storage.CurrentStore
	logger  *utils.Logger
}

func NewGuard(current storage.CurrentStore, logger *utils.Logger) *Guard {
	return &Guard{current: current, logger: logger}
}

// Repair scans for business keys holding more than one active row, keeps
// the row with the latest valid_from and closes the rest. Returns the
// number of rows closed.
func (g *Guard) Repair(at time.Time) (int, error) {
	active, err := g.current.ActiveVersions()
	if err != nil {
		return 0, err
	}

	byHash := make(map[string][]*models.ProductVersion)
	for _, v := range active {
		byHash[v.ProductHash] = append(byHash[v.ProductHash], v)
	}

	closed := 0
	for hash, versions := range byHash {
		if len(versions) < 2 {
			continue
		}
		keep := versions[0]
		for _, v := range versions[1:] {
			if v.ValidFrom.After(keep.ValidFrom) {
				keep = v
			}
		}
		g.logger.Warn("Guard: %d active rows share key %s, keeping product_id %d",
			len(versions), shortHash(hash), keep.ProductID)

		for _, v := range versions {
			if v.ProductID == keep.ProductID {
				continue
			}
			if err := g.current.CloseVersion(v.ProductID, at); err != nil {
				g.logger.Error("Guard: close product_id %d: %v", v.ProductID, err)
				continue
			}
			closed++
		}
	}
	return closed, nil
}
