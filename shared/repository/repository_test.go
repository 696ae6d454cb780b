package repository_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/infras/otel/mocks"
	"roombook/shared/dto"
	"roombook/shared/repository"
)

type slot struct {
	ID     int64  `db:"id"`
	RoomID int64  `db:"room_id"`
	Date   string `db:"date"`
}

func TestRepository_ListQuery(t *testing.T) {
	repo := repository.NewRepository[slot]("slot", "slots", "id", nil, mocks.NewOtel())

	tests := []struct {
		name     string
		params   dto.QueryParams
		filter   dto.FilterGroup
		columns  []string
		want     string
		wantArgs map[string]any
	}{
		{
			name:     "insertion order",
			params:   dto.InsertionOrder(),
			want:     "SELECT slots.id, slots.room_id, slots.date FROM slots ORDER BY slots.id ASC",
			wantArgs: map[string]any{},
		},
		{
			name:   "filtered with selected columns",
			params: dto.InsertionOrder(),
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "room_id", Value: int64(2), Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "date", Value: "2024-01-01", Operator: dto.FilterOperatorEq},
				},
			},
			columns:  []string{"id"},
			want:     "SELECT slots.id FROM slots WHERE (room_id = :room_id AND date = :date) ORDER BY slots.id ASC",
			wantArgs: map[string]any{"room_id": int64(2), "date": "2024-01-01"},
		},
		{
			name:     "unordered",
			want:     "SELECT slots.id, slots.room_id, slots.date FROM slots",
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := repo.ListQuery(context.Background(), tt.params, tt.filter, tt.columns...)

			assert.Equal(t, tt.want, strings.Join(strings.Fields(query), " "))
			assert.NotContains(t, query, "LIMIT")
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
