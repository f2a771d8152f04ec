package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func TestGenerateSingleSection(t *testing.T) {
	seats, err := Generate([]model.SectionSpec{
		{Name: "Gold", Rows: 2, SeatsPerRow: 3},
	})
	require.NoError(t, err)
	require.Len(t, seats, 6)

	wantIDs := []string{"gold-A1", "gold-A2", "gold-A3", "gold-B1", "gold-B2", "gold-B3"}
	wantRows := []int{1, 1, 1, 2, 2, 2}
	for i, s := range seats {
		assert.Equal(t, wantIDs[i], s.ID)
		assert.Equal(t, wantRows[i], s.Row)
		assert.Equal(t, "gold", s.SectionType)
		assert.False(t, s.Occupied)
		assert.Nil(t, s.AttendeeID)
	}
}

func TestGenerateSectionOrderPreserved(t *testing.T) {
	seats, err := Generate([]model.SectionSpec{
		{Name: "Balcony", Rows: 1, SeatsPerRow: 2},
		{Name: "Floor", Rows: 1, SeatsPerRow: 2},
	})
	require.NoError(t, err)
	require.Len(t, seats, 4)
	assert.Equal(t, "balcony-A1", seats[0].ID)
	assert.Equal(t, "balcony-A2", seats[1].ID)
	assert.Equal(t, "floor-A1", seats[2].ID)
	assert.Equal(t, "floor-A2", seats[3].ID)
}

func TestGenerateSeatCountAndUniqueness(t *testing.T) {
	specs := []model.SectionSpec{
		{Name: "Gold", Rows: 30, SeatsPerRow: 12},
		{Name: "Silver", Rows: 0, SeatsPerRow: 50},
		{Name: "Bronze", Rows: 5, SeatsPerRow: 0},
		{Name: "Lawn", Rows: 3, SeatsPerRow: 7},
	}
	seats, err := Generate(specs)
	require.NoError(t, err)

	want := 0
	for _, sec := range specs {
		want += sec.Rows * sec.SeatsPerRow
	}
	require.Len(t, seats, want)

	seen := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		_, dup := seen[s.ID]
		require.False(t, dup, "duplicate id %s", s.ID)
		seen[s.ID] = struct{}{}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	specs := []model.SectionSpec{
		{Name: "Gold", Rows: 4, SeatsPerRow: 6},
		{Name: "Silver", Rows: 2, SeatsPerRow: 9},
	}
	first, err := Generate(specs)
	require.NoError(t, err)
	second, err := Generate(specs)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateRejectsCollidingSections(t *testing.T) {
	_, err := Generate([]model.SectionSpec{
		{Name: "Gold", Rows: 1, SeatsPerRow: 1},
		{Name: "GOLD", Rows: 1, SeatsPerRow: 1},
	})
	require.ErrorIs(t, err, ErrDuplicateSeatID)
}

func TestGenerateRejectsInvalidSections(t *testing.T) {
	_, err := Generate([]model.SectionSpec{{Name: " ", Rows: 1, SeatsPerRow: 1}})
	require.ErrorIs(t, err, ErrInvalidSection)

	_, err = Generate([]model.SectionSpec{{Name: "Gold", Rows: -1, SeatsPerRow: 1}})
	require.ErrorIs(t, err, ErrInvalidSection)

	_, err = Generate([]model.SectionSpec{{Name: "Gold", Rows: 1, SeatsPerRow: -3}})
	require.ErrorIs(t, err, ErrInvalidSection)
}

func TestGenerateEmptyInput(t *testing.T) {
	seats, err := Generate(nil)
	require.NoError(t, err)
	assert.Empty(t, seats)
}

func TestRowLabel(t *testing.T) {
	cases := map[int]string{
		1:  "A",
		2:  "B",
		26: "Z",
		27: "AA",
		28: "AB",
		52: "AZ",
		53: "BA",
		0:  "",
		-4: "",
	}
	for row, want := range cases {
		assert.Equal(t, want, RowLabel(row), "row %d", row)
	}
}

func TestRowLabelRoundTrip(t *testing.T) {
	for row := 1; row <= 1000; row++ {
		label := RowLabel(row)
		got, ok := RowNumber(label)
		require.True(t, ok, "label %q", label)
		require.Equal(t, row, got, "label %q", label)
	}
}

func TestRowNumberRejectsGarbage(t *testing.T) {
	for _, label := range []string{"", "a1", "Ä", "A B"} {
		_, ok := RowNumber(label)
		assert.False(t, ok, fmt.Sprintf("label %q", label))
	}
}
