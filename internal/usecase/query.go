package usecase

import (
	"strings"

	"personarank/internal/domain"
)

// QueryBuilder composes the embeddable query from persona and job. Pure
// string composition: no persona is special-cased, identical inputs always
// produce identical output.
type QueryBuilder struct {
	prefix string
}

// NewQueryBuilder creates a query builder. prefix is prepended to the
// composite (e.g. "query: " for e5-family models); it may be empty.
func NewQueryBuilder(prefix string) *QueryBuilder {
	return &QueryBuilder{prefix: prefix}
}

// Build derives the composite query. Persona and job must be non-empty
// after trimming.
func (b *QueryBuilder) Build(persona, job string) (domain.PersonaQuery, error) {
	persona = strings.TrimSpace(persona)
	job = strings.TrimSpace(job)

	if persona == "" {
		return domain.PersonaQuery{}, &domain.ValidationError{Field: "persona", Reason: "must not be empty"}
	}
	if job == "" {
		return domain.PersonaQuery{}, &domain.ValidationError{Field: "job_to_be_done", Reason: "must not be empty"}
	}

	return domain.PersonaQuery{
		Persona:     persona,
		Job:         job,
		Composite:   b.prefix + persona + " needs to " + job,
		PersonaOnly: b.prefix + persona,
	}, nil
}
