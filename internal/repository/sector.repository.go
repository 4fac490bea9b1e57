package repository

import (
	"database/sql"
	"fmt"

	"convictiontrader/internal/db/models/postgres/public/model"
	"convictiontrader/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
)

type SectorRepository interface {
	GetSectorMap(symbols []string) (map[string]string, error)
}

type sectorRepositoryHandler struct {
	Db *sql.DB
}

func NewSectorRepository(db *sql.DB) SectorRepository {
	return sectorRepositoryHandler{Db: db}
}

// GetSectorMap returns symbol -> sector for the given symbols. Symbols
// with no classification are simply absent from the result; sector caps
// are skipped for them.
func (h sectorRepositoryHandler) GetSectorMap(symbols []string) (map[string]string, error) {
	if len(symbols) == 0 {
		return map[string]string{}, nil
	}

	symbolExpressions := []postgres.Expression{}
	for _, symbol := range symbols {
		symbolExpressions = append(symbolExpressions, postgres.String(symbol))
	}

	query := table.SecuritySector.
		SELECT(table.SecuritySector.AllColumns).
		WHERE(table.SecuritySector.Symbol.IN(symbolExpressions...))

	results := []model.SecuritySector{}
	err := query.Query(h.Db, &results)
	if err != nil {
		return nil, fmt.Errorf("failed to list security sectors: %w", err)
	}

	out := map[string]string{}
	for _, row := range results {
		out[row.Symbol] = row.Sector
	}

	return out, nil
}
