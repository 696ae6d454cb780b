package shared_test

import (
	"context"
	"errors"
	"reflect"
	"roombook/shared"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/dto"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestFilterByID(t *testing.T) {
	tests := []struct {
		name     string
		id       any
		fieldID  string
		table    string
		expected dto.FilterGroup
	}{
		{
			name:    "numeric room id",
			id:      int64(7),
			fieldID: "id",
			table:   "rooms",
			expected: dto.FilterGroup{
				Filters: []any{
					dto.Filter{
						Field:    "id",
						Value:    int64(7),
						Operator: dto.FilterOperatorEq,
						Table:    "rooms",
					},
				},
			},
		},
		{
			name:    "filter with empty table",
			id:      "456",
			fieldID: "id",
			table:   "",
			expected: dto.FilterGroup{
				Filters: []any{
					dto.Filter{
						Field:    "id",
						Value:    "456",
						Operator: dto.FilterOperatorEq,
						Table:    "",
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.FilterByID(tt.id, tt.fieldID, tt.table)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestFilterByFields(t *testing.T) {
	group := shared.FilterByFields("bookings", "room_id", int64(1), "date", "2024-01-01")

	if group.Operator != dto.FilterGroupOperatorAnd {
		t.Errorf("expected AND operator, got %s", group.Operator)
	}

	if len(group.Filters) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(group.Filters))
	}

	second, ok := group.Filters[1].(dto.Filter)
	if !ok {
		t.Fatal("expected filter to be of type dto.Filter")
	}

	if second.Field != "date" || second.Value != "2024-01-01" || second.Table != "bookings" {
		t.Errorf("unexpected filter %+v", second)
	}

	odd := shared.FilterByFields("bookings", "room_id")
	if len(odd.Filters) != 0 {
		t.Errorf("expected dangling field to be ignored, got %d filters", len(odd.Filters))
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []any
		expected string
	}{
		{name: "prefix only", prefix: "room:gets", expected: "room:gets"},
		{name: "string part", prefix: "customer:history", parts: []any{"Ann"}, expected: "customer:history:Ann"},
		{name: "mixed parts", prefix: "limiter", parts: []any{"10.0.0.1", 42}, expected: "limiter:10.0.0.1:42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.BuildCacheKey(tt.prefix, tt.parts...); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")

	// errors are swallowed
	mockCache.EXPECT().Clear(gomock.Any(), "customer:gets*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "customer:gets")
}
