package repository

import (
	"fmt"

	"gorm.io/gorm"

	"history-service/internal/model"
)

// applyPredicates binds each compiled predicate through the query builder.
// Column names come from the per-source mapping, never from request input;
// values are always bound parameters.
func applyPredicates(query *gorm.DB, preds []model.Predicate, columnFor func(model.PredicateField) string) *gorm.DB {
	for _, p := range preds {
		column := columnFor(p.Field)
		if column == "" {
			continue
		}
		query = query.Where(fmt.Sprintf("%s %s ?", column, p.Op), p.Value)
	}
	return query
}

// orderClause builds the shared ordering with the id tiebreak that keeps
// pagination deterministic. NULL ordering follows Postgres defaults so the
// in-memory merge agrees with the per-source fetches.
func orderClause(order model.OrderKey, column, idColumn string) string {
	direction := "ASC"
	if order.Desc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, %s ASC", column, direction, idColumn)
}
